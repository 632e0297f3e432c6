package csvcodec

import (
	"strings"

	"vinoscan/internal/wine"
)

// DefaultExportFilename is the suggested name for exported inventories.
const DefaultExportFilename = "cellar_inventory.csv"

var exportHeader = []string{"Name", "Maker", "Year", "Type", "Price", "Bin", "Notes"}

// Export serializes the active (non-trashed) entries in collection order.
// Every field is wrapped in quotes; the dialect performs no further escaping,
// matching the import tokenizer which strips quote characters.
func Export(entries []wine.Entry) string {
	var sb strings.Builder
	writeRow(&sb, exportHeader, false)

	for _, entry := range entries {
		if entry.Deleted() {
			continue
		}
		sb.WriteByte('\n')
		writeRow(&sb, []string{
			entry.Name,
			entry.Maker,
			entry.Year,
			string(entry.Type),
			entry.Price,
			entry.BinNumber,
			entry.Notes,
		}, true)
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string, quoted bool) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		if quoted {
			sb.WriteByte('"')
			sb.WriteString(cell)
			sb.WriteByte('"')
		} else {
			sb.WriteString(cell)
		}
	}
}
