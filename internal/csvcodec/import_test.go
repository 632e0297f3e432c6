package csvcodec

import (
	"errors"
	"testing"
	"time"

	"vinoscan/internal/wine"
)

func TestImportResolvesHeaderAliases(t *testing.T) {
	start := time.Now()
	entries, err := Import("Wine Name,Winery,Vintage\n\"Opus One\",\"Opus Winery\",\"2018\"", start)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Name != "Opus One" || entry.Maker != "Opus Winery" || entry.Year != "2018" {
		t.Fatalf("aliases not resolved: %+v", entry)
	}
	if entry.Type != wine.TypeRed {
		t.Fatalf("missing type column must default to Red, got %q", entry.Type)
	}
	if entry.CreatedAt <= start.UnixMilli() {
		t.Fatalf("CreatedAt %d must be strictly greater than import start %d", entry.CreatedAt, start.UnixMilli())
	}
	if entry.ID == "" {
		t.Fatal("imported entries need generated ids")
	}
	if len(entry.ImageURLs) != 0 || len(entry.CustomFields) != 0 || entry.Description != "" {
		t.Fatalf("imported entries must start without gallery/descriptions: %+v", entry)
	}
}

func TestImportHeaderOnlyFails(t *testing.T) {
	_, err := Import("Name,Maker,Year\n", time.Now())
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
}

func TestImportEmptyInputFails(t *testing.T) {
	_, err := Import("", time.Now())
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
}

func TestImportDefaultsMissingFields(t *testing.T) {
	entries, err := Import("Year\n2015", time.Now())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	entry := entries[0]
	if entry.Name != "Imported Wine" {
		t.Fatalf("name default wrong: %q", entry.Name)
	}
	if entry.Maker != "Unknown" {
		t.Fatalf("maker default wrong: %q", entry.Maker)
	}
	if entry.Year != "2015" {
		t.Fatalf("year lost: %q", entry.Year)
	}
}

func TestImportTypeRequiresExactMatch(t *testing.T) {
	entries, err := Import("Name,Type\nA,White\nB,white\nC,Champagne/Sparkling", time.Now())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if entries[0].Type != wine.TypeWhite {
		t.Fatalf("exact type should match: %q", entries[0].Type)
	}
	if entries[1].Type != wine.TypeRed {
		t.Fatalf("inexact type must default to Red: %q", entries[1].Type)
	}
	if entries[2].Type != wine.TypeChampagne {
		t.Fatalf("sparkling type should match: %q", entries[2].Type)
	}
}

func TestImportSkipsBlankRows(t *testing.T) {
	entries, err := Import("Name\nA\n\nB\n", time.Now())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestImportCreatedAtFollowsFileOrder(t *testing.T) {
	entries, err := Import("Name\nA\nB\nC", time.Now())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !(entries[0].CreatedAt < entries[1].CreatedAt && entries[1].CreatedAt < entries[2].CreatedAt) {
		t.Fatalf("CreatedAt must strictly increase in file order: %d %d %d",
			entries[0].CreatedAt, entries[1].CreatedAt, entries[2].CreatedAt)
	}
}
