package csvcodec

import (
	"strings"
	"testing"
	"time"

	"vinoscan/internal/wine"
)

func TestExportHeaderAndQuoting(t *testing.T) {
	entry := wine.NewEntry()
	entry.Name = "Opus One"
	entry.Maker = "Opus Winery"
	entry.Year = "2018"
	entry.Type = wine.TypeRed
	entry.Price = "$120.00"
	entry.BinNumber = "A1"
	entry.Notes = "gift"

	out := Export([]wine.Entry{entry})
	lines := strings.Split(out, "\n")
	if lines[0] != "Name,Maker,Year,Type,Price,Bin,Notes" {
		t.Fatalf("header wrong: %q", lines[0])
	}
	if lines[1] != `"Opus One","Opus Winery","2018","Red","$120.00","A1","gift"` {
		t.Fatalf("row wrong: %q", lines[1])
	}
}

func TestExportSkipsTrashedEntries(t *testing.T) {
	active := wine.NewEntry()
	active.Name = "Keep"
	trashed := wine.NewEntry()
	trashed.Name = "Drop"
	ts := time.Now().UnixMilli()
	trashed.DeletedAt = &ts

	out := Export([]wine.Entry{active, trashed})
	if strings.Contains(out, "Drop") {
		t.Fatalf("trashed entry exported: %s", out)
	}
	if !strings.Contains(out, "Keep") {
		t.Fatalf("active entry missing: %s", out)
	}
}

// Exporting then importing the same active set must reconstruct the seven
// exchanged fields; description and custom fields are not part of the format
// and must not reappear.
func TestExportImportRoundTrip(t *testing.T) {
	entry := wine.NewEntry()
	entry.Name = "Château Margaux"
	entry.Maker = "Margaux Estates"
	entry.Year = "N/V"
	entry.Type = wine.TypeWhite
	entry.Price = "45"
	entry.BinNumber = "B2"
	entry.Notes = "complex, long finish"
	entry.Description = "should not survive"
	entry.CustomFields = []wine.CustomField{{Label: "Region", Value: "Bordeaux"}}

	imported, err := Import(Export([]wine.Entry{entry}), time.Now())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(imported) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(imported))
	}

	got := imported[0]
	if got.Name != entry.Name || got.Maker != entry.Maker || got.Year != entry.Year ||
		got.Type != entry.Type || got.Price != entry.Price || got.BinNumber != entry.BinNumber ||
		got.Notes != entry.Notes {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", entry, got)
	}
	if got.Description != "" || len(got.CustomFields) != 0 {
		t.Fatalf("non-exported fields reappeared: %+v", got)
	}
	if got.ID == entry.ID {
		t.Fatal("imported entries must receive fresh ids")
	}
}
