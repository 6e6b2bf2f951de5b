package store

import (
	"cmp"
	"strings"

	"github.com/arthur-debert/contactview/types"
)

// comparator returns the canonical order of a partition. Name ordered
// partitions sort by folded display label and break ties on id, so the order
// is total and stable. FilterByID sorts by id alone.
func (s *Store) comparator(t types.FilterType) func(a, b types.RecordID) int {
	if t == types.FilterByID {
		return func(a, b types.RecordID) int {
			return cmp.Compare(a, b)
		}
	}

	return func(a, b types.RecordID) int {
		ca, okA := s.records[a]
		cb, okB := s.records[b]
		if okA && okB {
			if c := strings.Compare(s.labels.sortKey(ca), s.labels.sortKey(cb)); c != 0 {
				return c
			}
		}
		return cmp.Compare(a, b)
	}
}

// nameOrdered reports whether the partition order depends on display labels
func nameOrdered(t types.FilterType) bool {
	return t != types.FilterByID
}
