package store

import (
	"golang.org/x/text/cases"

	"github.com/arthur-debert/contactview/types"
)

// labelEntry caches the display label of one record. A dirty entry is
// recomputed on the next read; reads never mutate a clean entry.
type labelEntry struct {
	label   string
	sortKey string
	dirty   bool
}

type labelCache struct {
	order   types.DisplayLabelOrder
	fold    cases.Caser
	entries map[types.RecordID]*labelEntry
}

func newLabelCache(order types.DisplayLabelOrder) *labelCache {
	return &labelCache{
		order:   order,
		fold:    cases.Fold(),
		entries: make(map[types.RecordID]*labelEntry),
	}
}

func (lc *labelCache) entry(c *types.Contact) *labelEntry {
	e, ok := lc.entries[c.ID]
	if !ok {
		e = &labelEntry{dirty: true}
		lc.entries[c.ID] = e
	}
	if e.dirty {
		e.label = types.DisplayLabel(c, lc.order)
		e.sortKey = lc.fold.String(e.label)
		e.dirty = false
	}
	return e
}

func (lc *labelCache) get(c *types.Contact) string {
	return lc.entry(c).label
}

func (lc *labelCache) sortKey(c *types.Contact) string {
	return lc.entry(c).sortKey
}

// invalidate marks one record for recomputation
func (lc *labelCache) invalidate(id types.RecordID) {
	if e, ok := lc.entries[id]; ok {
		e.dirty = true
	}
}

// reset switches the label order and marks every entry dirty
func (lc *labelCache) reset(order types.DisplayLabelOrder) {
	lc.order = order
	for _, e := range lc.entries {
		e.dirty = true
	}
}

func (lc *labelCache) forget(id types.RecordID) {
	delete(lc.entries, id)
}
