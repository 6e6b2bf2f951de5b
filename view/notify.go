package view

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/contactview/types"
)

// HandleChange applies a store notification for the followed partition.
// Notifications about records the view does not track are ignored.
func (v *View) HandleChange(c types.Change) {
	v.mustNotBeDispatching("HandleChange")
	if !v.subscribed || c.Partition != v.state.Type {
		v.log.Debug("notification ignored", "partition", c.Partition.String(), "kind", c.Kind.String())
		return
	}

	switch c.Kind {
	case types.RecordsInserted:
		v.recordsInserted(c)
	case types.RecordsRemoved:
		v.recordsRemoved(c)
	case types.RecordChanged:
		v.recordChanged(c)
	case types.PartitionPopulated:
		v.updatePopulated()
	}
}

// recordsInserted adds the matching records of a contiguous partition run.
// They are contiguous in the rows too, so one range covers them.
func (v *View) recordsInserted(c types.Change) {
	var matched []types.RecordID
	for _, id := range c.IDs {
		if v.matches(id) {
			matched = append(matched, id)
		}
	}
	if len(matched) == 0 {
		return
	}

	start := v.rowsBefore(c.Position)
	v.log.Debug("records inserted", "row", start, "count", len(matched))
	v.insertRows(start, matched)
}

// recordsRemoved drops the tracked records of a contiguous partition run
func (v *View) recordsRemoved(c types.Change) {
	start, count := -1, 0
	for _, id := range c.IDs {
		if !v.members.Contains(uint32(id)) {
			continue
		}
		if start < 0 {
			start = v.RowForID(id)
		}
		count++
	}
	if count == 0 {
		return
	}

	v.log.Debug("records removed", "row", start, "count", count)
	v.removeRows(start, count)
}

// recordChanged re-evaluates a record that kept its partition position.
// A change message carries exactly one record.
func (v *View) recordChanged(c types.Change) {
	if len(c.IDs) != 1 {
		panic(fmt.Sprintf("view: change message for %d records, want 1", len(c.IDs)))
	}
	id := c.IDs[0]
	was := v.members.Contains(uint32(id))
	now := v.matches(id)

	switch {
	case was && now:
		v.emit(types.Event{Kind: types.RowChanged, Start: v.RowForID(id), Count: 1})
	case was:
		v.removeRows(v.RowForID(id), 1)
	case now:
		v.insertRows(v.rowsBefore(c.Position), []types.RecordID{id})
	}
}

// rowsBefore counts the rows preceding a partition position, which is the
// row index a record inserted at that position takes
func (v *View) rowsBefore(position int) int {
	order := v.src.Records(v.state.Type)
	position = min(max(position, 0), len(order))

	n := 0
	for _, id := range order[:position] {
		if v.members.Contains(uint32(id)) {
			n++
		}
	}
	return n
}

func (v *View) matches(id types.RecordID) bool {
	c, ok := v.src.Record(id)
	return ok && v.filter.Matches(c)
}

// RowCount returns the number of rows
func (v *View) RowCount() int {
	return len(v.rows)
}

// IDForRow returns the record shown at a row
func (v *View) IDForRow(row int) (types.RecordID, bool) {
	if row < 0 || row >= len(v.rows) {
		return 0, false
	}
	return v.rows[row], true
}

// RowForID returns the row showing a record, or -1
func (v *View) RowForID(id types.RecordID) int {
	if !v.members.Contains(uint32(id)) {
		return -1
	}
	return slices.Index(v.rows, id)
}

// RowAt returns the record shown at a row. The contact is owned by the
// source and must not be modified.
func (v *View) RowAt(row int) (*types.Contact, bool) {
	id, ok := v.IDForRow(row)
	if !ok {
		return nil, false
	}
	return v.src.Record(id)
}

// FilterID reports whether a record would be shown under the current
// filter, whether or not it is currently a row
func (v *View) FilterID(id types.RecordID) bool {
	return v.matches(id)
}

// IDs returns a copy of the rows
func (v *View) IDs() []types.RecordID {
	return slices.Clone(v.rows)
}
