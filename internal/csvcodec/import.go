package csvcodec

import (
	"errors"
	"strings"
	"time"

	"vinoscan/internal/wine"
)

// ErrMissingHeader marks an import without a header row plus at least one
// data row. Nothing is imported in that case.
var ErrMissingHeader = errors.New("CSV is empty or missing headers")

const (
	importedNameFallback  = "Imported Wine"
	importedMakerFallback = "Unknown"
)

// Column aliases accepted in the header row, matched after lowercasing.
var (
	nameAliases  = []string{"name", "wine", "wine name"}
	makerAliases = []string{"maker", "winery", "producer"}
	yearAliases  = []string{"year", "vintage"}
	typeAliases  = []string{"type", "category"}
	priceAliases = []string{"price", "cost", "value"}
	binAliases   = []string{"bin", "bin number", "location"}
	notesAliases = []string{"notes", "personal notes", "comment"}
)

// Import parses CSV text into entry drafts ready for catalog insertion.
//
// Per-row problems degrade to defaults (missing name, unknown type) rather
// than aborting; only a structurally empty document fails. CreatedAt is the
// import start time plus the row index so parsed order survives the default
// newest-first sort as strictly increasing timestamps.
func Import(text string, start time.Time) ([]wine.Entry, error) {
	rows := Tokenize(text)
	if len(rows) < 2 {
		return nil, ErrMissingHeader
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(h)
	}

	columnFor := func(aliases []string) int {
		for i, header := range headers {
			for _, alias := range aliases {
				if header == alias {
					return i
				}
			}
		}
		return -1
	}

	nameCol := columnFor(nameAliases)
	makerCol := columnFor(makerAliases)
	yearCol := columnFor(yearAliases)
	typeCol := columnFor(typeAliases)
	priceCol := columnFor(priceAliases)
	binCol := columnFor(binAliases)
	notesCol := columnFor(notesAliases)

	startMillis := start.UnixMilli()
	var entries []wine.Entry
	for rowIndex := 1; rowIndex < len(rows); rowIndex++ {
		row := rows[rowIndex]
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}

		cell := func(col int) string {
			if col < 0 || col >= len(row) {
				return ""
			}
			return row[col]
		}

		entry := wine.NewEntry()
		entry.ImageURLs = []string{}
		entry.CustomFields = []wine.CustomField{}
		entry.Name = cell(nameCol)
		if entry.Name == "" {
			entry.Name = importedNameFallback
		}
		entry.Maker = cell(makerCol)
		if entry.Maker == "" {
			entry.Maker = importedMakerFallback
		}
		entry.Year = cell(yearCol)
		entry.Type = wine.ParseType(cell(typeCol), wine.TypeRed)
		entry.Price = cell(priceCol)
		entry.BinNumber = cell(binCol)
		entry.Notes = cell(notesCol)
		entry.CreatedAt = startMillis + int64(rowIndex)

		entries = append(entries, entry)
	}

	return entries, nil
}
