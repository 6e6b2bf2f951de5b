// Package delta computes the range edits that turn one subsequence of a fixed
// order into another.
package delta

import "github.com/arthur-debert/contactview/types"

// OpKind is the kind of a range edit
type OpKind int

const (
	Remove OpKind = iota
	Insert
)

func (k OpKind) String() string {
	if k == Remove {
		return "remove"
	}
	return "insert"
}

// Op is a contiguous edit. Start is an index into the list as it stands
// after every previous op has been applied.
type Op struct {
	Kind  OpKind
	Start int
	IDs   []types.RecordID
}

// Count returns the number of rows touched by the op
func (o Op) Count() int {
	return len(o.IDs)
}

// Compute walks order once and returns the edits transforming the
// subsequence selected by inOld into the one selected by inNew.
//
// Records present in both act as anchors. Between two anchors the old-only
// records are contiguous in the old list and the new-only records are
// contiguous in the new list, so each gap yields at most one Remove followed
// by at most one Insert.
func Compute(order []types.RecordID, inOld, inNew func(types.RecordID) bool) []Op {
	var ops []Op
	var removed, inserted []types.RecordID
	index := 0

	flush := func() {
		if len(removed) > 0 {
			ops = append(ops, Op{Kind: Remove, Start: index, IDs: removed})
			removed = nil
		}
		if len(inserted) > 0 {
			ops = append(ops, Op{Kind: Insert, Start: index, IDs: inserted})
			index += len(inserted)
			inserted = nil
		}
	}

	for _, id := range order {
		old, cur := inOld(id), inNew(id)
		switch {
		case old && cur:
			flush()
			index++
		case old:
			removed = append(removed, id)
		case cur:
			inserted = append(inserted, id)
		}
	}
	flush()

	return ops
}

// Apply replays ops onto list and returns the result.
// The input slice may be reused.
func Apply(list []types.RecordID, ops []Op) []types.RecordID {
	for _, op := range ops {
		switch op.Kind {
		case Remove:
			list = append(list[:op.Start], list[op.Start+op.Count():]...)
		case Insert:
			tail := append([]types.RecordID(nil), list[op.Start:]...)
			list = append(append(list[:op.Start], op.IDs...), tail...)
		}
	}
	return list
}
