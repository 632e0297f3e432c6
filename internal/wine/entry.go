package wine

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type classifies a bottle into the closed set of wine categories.
type Type string

const (
	TypeRed       Type = "Red"
	TypeWhite     Type = "White"
	TypeRose      Type = "Rosé"
	TypeChampagne Type = "Champagne/Sparkling"
	TypeOther     Type = "Other"
)

var allTypes = []Type{
	TypeRed,
	TypeWhite,
	TypeRose,
	TypeChampagne,
	TypeOther,
}

var typeSet = func() map[Type]struct{} {
	set := make(map[Type]struct{}, len(allTypes))
	for _, t := range allTypes {
		set[t] = struct{}{}
	}
	return set
}()

// Types returns the closed set of valid wine types in display order.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ValidType reports whether value matches a closed-set type exactly.
func ValidType(value string) bool {
	_, ok := typeSet[Type(value)]
	return ok
}

// ParseType returns the matching closed-set type, or fallback when the value
// does not match exactly.
func ParseType(value string, fallback Type) Type {
	if ValidType(value) {
		return Type(value)
	}
	return fallback
}

// CustomField is a user-defined label/value pair attached to an entry. Labels
// are not unique; ordering is preserved.
type CustomField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Entry is a single catalog record.
//
// ID and CreatedAt are assigned at construction and never change. DeletedAt
// is nil for active entries and holds the trash timestamp (epoch millis)
// otherwise; it is the only field that moves an entry between the active and
// trash partitions. ImageURLs index 0 is the primary image.
type Entry struct {
	ID           string        `json:"id"`
	ImageURLs    []string      `json:"imageUrls"`
	Name         string        `json:"name"`
	Maker        string        `json:"maker"`
	Year         string        `json:"year"`
	Type         Type          `json:"type"`
	Price        string        `json:"price"`
	Description  string        `json:"description"`
	BinNumber    string        `json:"binNumber"`
	Notes        string        `json:"notes"`
	CustomFields []CustomField `json:"customFields"`
	CreatedAt    int64         `json:"createdAt"`
	DeletedAt    *int64        `json:"deletedAt,omitempty"`
}

// Deleted reports whether the entry sits in the trash partition.
func (e *Entry) Deleted() bool {
	return e.DeletedAt != nil
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing shared slices.
func (e Entry) Clone() Entry {
	out := e
	if e.ImageURLs != nil {
		out.ImageURLs = append([]string(nil), e.ImageURLs...)
	}
	if e.CustomFields != nil {
		out.CustomFields = append([]CustomField(nil), e.CustomFields...)
	}
	if e.DeletedAt != nil {
		v := *e.DeletedAt
		out.DeletedAt = &v
	}
	return out
}

// NewEntry constructs a blank active entry with a fresh identifier and
// creation timestamp.
func NewEntry() Entry {
	return Entry{
		ID:        uuid.NewString(),
		Type:      TypeRed,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// LabelFacts is the structured result of analyzing one label image. It is
// never persisted as-is; merging into a draft attaches the generated ID,
// creation timestamp, and staged images.
type LabelFacts struct {
	Name        string `json:"name"`
	Maker       string `json:"maker"`
	Year        string `json:"year"`
	Type        Type   `json:"type"`
	Description string `json:"description"`
}

// Draft builds a new entry from the facts and the staged image gallery.
func (f LabelFacts) Draft(imageURLs []string) Entry {
	entry := NewEntry()
	entry.ImageURLs = append([]string(nil), imageURLs...)
	entry.Name = strings.TrimSpace(f.Name)
	entry.Maker = strings.TrimSpace(f.Maker)
	entry.Year = strings.TrimSpace(f.Year)
	entry.Type = ParseType(string(f.Type), TypeOther)
	entry.Description = strings.TrimSpace(f.Description)
	return entry
}
