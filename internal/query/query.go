// Package query derives the displayed view of the cellar: partition by trash
// state, filter by search term, and sort by the selected key. Apply is a pure
// function over a catalog snapshot; it never mutates its input.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"vinoscan/internal/wine"
)

// Key selects the sort field.
type Key string

const (
	KeyName      Key = "name"
	KeyMaker     Key = "maker"
	KeyYear      Key = "year"
	KeyPrice     Key = "price"
	KeyCreatedAt Key = "createdAt"
)

// Order selects the sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseKey resolves a user-supplied sort key. The empty string maps to the
// default createdAt ordering.
func ParseKey(value string) (Key, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "createdat", "created", "date", "added":
		return KeyCreatedAt, nil
	case "name":
		return KeyName, nil
	case "maker":
		return KeyMaker, nil
	case "year", "vintage":
		return KeyYear, nil
	case "price":
		return KeyPrice, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (name, maker, year, price, createdAt)", value)
	}
}

// Options captures the transient view state driving the derived list.
type Options struct {
	// Trash selects the trashed partition instead of the active one.
	Trash bool
	// Search keeps entries whose name, maker, notes, or bin number contains
	// the trimmed term, case-insensitively. Empty means no filter.
	Search string
	Sort   Key
	Order  Order
}

// Apply computes the ordered view for the given options. The result is a new
// slice; equal sort keys keep their relative collection order.
func Apply(entries []wine.Entry, opts Options) []wine.Entry {
	if opts.Sort == "" {
		opts.Sort = KeyCreatedAt
	}
	if opts.Order == "" {
		opts.Order = Descending
	}

	result := make([]wine.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Deleted() != opts.Trash {
			continue
		}
		result = append(result, entry)
	}

	if term := strings.ToLower(strings.TrimSpace(opts.Search)); term != "" {
		filtered := result[:0:0]
		for _, entry := range result {
			if matches(entry, term) {
				filtered = append(filtered, entry)
			}
		}
		result = filtered
	}

	sort.SliceStable(result, func(i, j int) bool {
		less, equal := compare(result[i], result[j], opts.Sort)
		if equal {
			return false
		}
		if opts.Order == Descending {
			return !less
		}
		return less
	})

	return result
}

func matches(entry wine.Entry, term string) bool {
	for _, field := range []string{entry.Name, entry.Maker, entry.Notes, entry.BinNumber} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func compare(a, b wine.Entry, key Key) (less, equal bool) {
	switch key {
	case KeyPrice:
		av, bv := priceValue(a.Price), priceValue(b.Price)
		return av < bv, av == bv
	case KeyYear:
		av, bv := yearValue(a.Year), yearValue(b.Year)
		return av < bv, av == bv
	case KeyCreatedAt:
		return a.CreatedAt < b.CreatedAt, a.CreatedAt == b.CreatedAt
	case KeyMaker:
		av, bv := strings.ToLower(a.Maker), strings.ToLower(b.Maker)
		return av < bv, av == bv
	default:
		av, bv := strings.ToLower(a.Name), strings.ToLower(b.Name)
		return av < bv, av == bv
	}
}

// priceValue strips everything but digits and decimal points before parsing.
// Unparseable values compare as zero.
func priceValue(raw string) float64 {
	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

// yearValue strips non-digits before parsing, so "c. 2018" and "2018-2020"
// still order sensibly. Unparseable values compare as zero.
func yearValue(raw string) int64 {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	value, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
