package store

import (
	"slices"
	"sort"

	"github.com/arthur-debert/contactview/types"
)

// partition is an ordered sequence of record ids sharing one comparator
type partition struct {
	typ       types.FilterType
	ids       []types.RecordID
	populated bool
	compare   func(a, b types.RecordID) int
}

func newPartition(t types.FilterType, compare func(a, b types.RecordID) int) *partition {
	return &partition{typ: t, compare: compare}
}

// insertPosition returns the position an id takes under the comparator.
// The id itself must not be in the partition.
func (p *partition) insertPosition(id types.RecordID) int {
	return sort.Search(len(p.ids), func(i int) bool {
		return p.compare(p.ids[i], id) > 0
	})
}

// insert places an id at its comparator position and returns that position
func (p *partition) insert(id types.RecordID) int {
	pos := p.insertPosition(id)
	p.insertAt(pos, id)
	return pos
}

func (p *partition) insertAt(pos int, id types.RecordID) {
	p.ids = slices.Insert(p.ids, pos, id)
}

func (p *partition) removeAt(pos int) {
	p.ids = slices.Delete(p.ids, pos, pos+1)
}

// indexOf scans for an id; the comparator cannot be trusted here because the
// record may already carry its new attributes
func (p *partition) indexOf(id types.RecordID) int {
	return slices.Index(p.ids, id)
}

// runs groups the positions of the selected ids into contiguous runs,
// in ascending position order
func (p *partition) runs(selected map[types.RecordID]bool) []run {
	var result []run
	for pos, id := range p.ids {
		if !selected[id] {
			continue
		}
		if n := len(result); n > 0 && result[n-1].start+len(result[n-1].ids) == pos {
			result[n-1].ids = append(result[n-1].ids, id)
			continue
		}
		result = append(result, run{start: pos, ids: []types.RecordID{id}})
	}
	return result
}

type run struct {
	start int
	ids   []types.RecordID
}
