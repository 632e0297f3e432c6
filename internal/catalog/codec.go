package catalog

import (
	"encoding/json"
	"fmt"

	"vinoscan/internal/wine"
)

// persistedEntry tolerates the legacy blob shape where a single imageUrl
// string predates the imageUrls gallery.
type persistedEntry struct {
	wine.Entry
	LegacyImageURL string `json:"imageUrl"`
}

func encodeEntries(entries []wine.Entry) ([]byte, error) {
	if entries == nil {
		entries = []wine.Entry{}
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode cellar: %w", err)
	}
	return blob, nil
}

// decodeEntries parses a persisted blob, migrating legacy records by wrapping
// their single imageUrl into a one-element gallery.
func decodeEntries(blob []byte) ([]wine.Entry, error) {
	var persisted []persistedEntry
	if err := json.Unmarshal(blob, &persisted); err != nil {
		return nil, fmt.Errorf("decode cellar: %w", err)
	}

	entries := make([]wine.Entry, 0, len(persisted))
	for _, p := range persisted {
		entry := p.Entry
		if entry.ImageURLs == nil {
			if p.LegacyImageURL != "" {
				entry.ImageURLs = []string{p.LegacyImageURL}
			} else {
				entry.ImageURLs = []string{}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
