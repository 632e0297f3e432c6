package main

import (
	"time"

	"vinoscan/internal/wine"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatCreated(millis int64) string {
	return time.UnixMilli(millis).Format("2006-01-02")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func entryRow(entry wine.Entry) []string {
	return []string{
		shortID(entry.ID),
		truncate(entry.Name, 32),
		truncate(entry.Maker, 24),
		entry.Year,
		string(entry.Type),
		entry.Price,
		entry.BinNumber,
		formatCreated(entry.CreatedAt),
	}
}

var entryHeaders = []string{"ID", "Name", "Maker", "Year", "Type", "Price", "Bin", "Added"}

var entryAligns = []columnAlignment{
	alignLeft, alignLeft, alignLeft, alignRight,
	alignLeft, alignRight, alignLeft, alignLeft,
}

// resolveEntryID accepts either a full id or a unique short prefix.
func resolveEntryID(entries []wine.Entry, ref string) (string, bool) {
	var match string
	for _, entry := range entries {
		if entry.ID == ref {
			return entry.ID, true
		}
		if len(ref) >= 4 && len(ref) < len(entry.ID) && entry.ID[:len(ref)] == ref {
			if match != "" {
				return "", false
			}
			match = entry.ID
		}
	}
	return match, match != ""
}
