// Package anchor maps between stored response identifiers and their
// user-facing display numbers (">>N"). Display numbers are derived
// from insertion order within a thread and never stored.
package anchor

import (
	"fmt"

	"github.com/petchan-dev/petchan/internal/domain"
)

// Index precomputes both directions over a thread's response list so
// lookups during rendering are O(1).
type Index struct {
	ordinalById map[domain.ResponseId]int
	idByOrdinal []domain.ResponseId
}

// NewIndex builds an index from responses already in insertion order
// (ascending creation time), as the storage layer returns them.
func NewIndex(responses []domain.Response) *Index {
	ix := &Index{
		ordinalById: make(map[domain.ResponseId]int, len(responses)),
		idByOrdinal: make([]domain.ResponseId, len(responses)),
	}
	for i, r := range responses {
		ix.ordinalById[r.Id] = i + 1 // display numbers are 1-based
		ix.idByOrdinal[i] = r.Id
	}
	return ix
}

// Resolve maps a ">>N" display number to the stored identifier of the
// Nth response.
func (ix *Index) Resolve(ordinal int) (domain.ResponseId, bool) {
	if ordinal < 1 || ordinal > len(ix.idByOrdinal) {
		return "", false
	}
	return ix.idByOrdinal[ordinal-1], true
}

// Ordinal maps a stored anchor identifier back to its display number.
func (ix *Index) Ordinal(id domain.ResponseId) (int, bool) {
	n, ok := ix.ordinalById[id]
	return n, ok
}

// Label renders the anchor indicator for a stored identifier. An
// identifier that resolves to no index (deleted response, different
// thread) yields an empty label: the indicator is omitted rather than
// failing the render.
func (ix *Index) Label(id domain.ResponseId) string {
	if id == "" {
		return ""
	}
	n, ok := ix.ordinalById[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf(">>%d", n)
}
