package localization

import (
	"locstone/internal/diagid"
)

// Catalog holds the per-locale translations indexed by diagnostic ID.
// An empty slot means the diagnostic has not been localized. A catalog is
// always pre-sized to the full identifier space so input ordering never
// matters: the slot position is authoritative.
type Catalog []string

// NewCatalog returns an empty catalog for an identifier space of n slots.
func NewCatalog(n int) Catalog {
	return make(Catalog, n)
}

// Message returns the translation stored for id, or "" when the id has no
// entry or is outside the catalog.
func (c Catalog) Message(id diagid.ID) string {
	if int(id) >= len(c) {
		return ""
	}
	return c[id]
}

// Set stores msg at id's slot, overwriting any earlier value (last record
// wins). Out-of-range ids are ignored.
func (c Catalog) Set(id diagid.ID, msg string) {
	if int(id) >= len(c) {
		return
	}
	c[id] = msg
}

// UnknownRecord is a source record whose identifier is not part of the
// current identifier space. The structured-list backend retains these for
// caller inspection; they never participate in lookup.
type UnknownRecord struct {
	Name string
	Msg  string
}
