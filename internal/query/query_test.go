package query

import (
	"testing"

	"vinoscan/internal/wine"
)

func entry(name string, createdAt int64) wine.Entry {
	return wine.Entry{ID: name, Name: name, CreatedAt: createdAt}
}

func names(entries []wine.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPartitionIsMutuallyExclusive(t *testing.T) {
	ts := int64(10)
	entries := []wine.Entry{
		{ID: "active", Name: "Active", CreatedAt: 1},
		{ID: "trashed", Name: "Trashed", CreatedAt: 2, DeletedAt: &ts},
	}

	active := Apply(entries, Options{})
	trash := Apply(entries, Options{Trash: true})

	if len(active) != 1 || active[0].ID != "active" {
		t.Fatalf("active view wrong: %v", names(active))
	}
	if len(trash) != 1 || trash[0].ID != "trashed" {
		t.Fatalf("trash view wrong: %v", names(trash))
	}
}

func TestSearchMatchesAnyCaseAcrossFields(t *testing.T) {
	entries := []wine.Entry{
		{ID: "1", Name: "Château Margaux", CreatedAt: 1},
		{ID: "2", Name: "Other", Maker: "MARGAUX Estates", CreatedAt: 2},
		{ID: "3", Name: "Note hit", Notes: "tastes like margaux", CreatedAt: 3},
		{ID: "4", Name: "Bin hit", BinNumber: "MARGAUX-7", CreatedAt: 4},
		{ID: "5", Name: "Miss", Maker: "Elsewhere", CreatedAt: 5},
	}

	got := Apply(entries, Options{Search: "  MaRgAuX "})
	if len(got) != 4 {
		t.Fatalf("expected 4 matches, got %v", names(got))
	}
	for _, e := range got {
		if e.ID == "5" {
			t.Fatal("non-matching entry included")
		}
	}

	if got := Apply(entries, Options{Search: "nebbiolo"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", names(got))
	}
}

func TestSortPriceDescendingWithUnparseableAsZero(t *testing.T) {
	entries := []wine.Entry{
		{ID: "a", Name: "a", Price: "$120.00", CreatedAt: 1},
		{ID: "b", Name: "b", Price: "45", CreatedAt: 2},
		{ID: "c", Name: "c", Price: "bad", CreatedAt: 3},
		{ID: "d", Name: "d", Price: "", CreatedAt: 4},
	}

	got := Apply(entries, Options{Sort: KeyPrice, Order: Descending})
	if !equal(names(got), []string{"a", "b", "c", "d"}) {
		t.Fatalf("price sort wrong: %v", names(got))
	}
}

func TestSortYearStripsNonDigits(t *testing.T) {
	entries := []wine.Entry{
		{ID: "nv", Name: "nv", Year: "N/V", CreatedAt: 1},
		{ID: "old", Name: "old", Year: "c. 1989", CreatedAt: 2},
		{ID: "new", Name: "new", Year: "2020", CreatedAt: 3},
	}
	got := Apply(entries, Options{Sort: KeyYear, Order: Ascending})
	if !equal(names(got), []string{"nv", "old", "new"}) {
		t.Fatalf("year sort wrong: %v", names(got))
	}
}

func TestSortNameCaseInsensitive(t *testing.T) {
	entries := []wine.Entry{
		entry("zinfandel", 1),
		entry("Barolo", 2),
		entry("aglianico", 3),
	}
	got := Apply(entries, Options{Sort: KeyName, Order: Ascending})
	if !equal(names(got), []string{"aglianico", "Barolo", "zinfandel"}) {
		t.Fatalf("name sort wrong: %v", names(got))
	}
}

func TestStableSortPreservesTies(t *testing.T) {
	entries := []wine.Entry{
		{ID: "first", Name: "first", Price: "", CreatedAt: 1},
		{ID: "second", Name: "second", Price: "junk", CreatedAt: 2},
		{ID: "third", Name: "third", Price: "mystery", CreatedAt: 3},
	}
	got := Apply(entries, Options{Sort: KeyPrice, Order: Descending})
	if !equal(names(got), []string{"first", "second", "third"}) {
		t.Fatalf("ties must keep collection order: %v", names(got))
	}
}

func TestDefaultSortNewestFirst(t *testing.T) {
	entries := []wine.Entry{entry("older", 100), entry("newer", 200)}
	got := Apply(entries, Options{})
	if !equal(names(got), []string{"newer", "older"}) {
		t.Fatalf("default sort wrong: %v", names(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	entries := []wine.Entry{entry("b", 1), entry("a", 2)}
	Apply(entries, Options{Sort: KeyName, Order: Ascending})
	if entries[0].Name != "b" || entries[1].Name != "a" {
		t.Fatalf("input mutated: %v", names(entries))
	}
}

func TestParseKey(t *testing.T) {
	for input, want := range map[string]Key{
		"":        KeyCreatedAt,
		"date":    KeyCreatedAt,
		"Name":    KeyName,
		"vintage": KeyYear,
		"price":   KeyPrice,
		"maker":   KeyMaker,
	} {
		got, err := ParseKey(input)
		if err != nil || got != want {
			t.Errorf("ParseKey(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParseKey("bottles"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
