package view

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arthur-debert/contactview/internal/delta"
	"github.com/arthur-debert/contactview/internal/matching"
	"github.com/arthur-debert/contactview/types"
)

// FilterState returns the current filter
func (v *View) FilterState() types.FilterState {
	return v.state
}

// FilterType returns the partition the view follows
func (v *View) FilterType() types.FilterType {
	return v.state.Type
}

// FilterPattern returns the current pattern
func (v *View) FilterPattern() string {
	return v.state.Pattern
}

// RequiredProperty returns the current required property mask
func (v *View) RequiredProperty() types.RequiredProperty {
	return v.state.RequiredProperty
}

// SearchByFirstNameCharacter reports whether first-letter mode is on
func (v *View) SearchByFirstNameCharacter() bool {
	return v.state.SearchByFirstNameCharacter
}

// IsPopulated reports whether the view follows a populated partition
func (v *View) IsPopulated() bool {
	return v.populated
}

// SetFilterType switches the view to another partition. Every previous row
// is removed in one range, then every row selected in the new partition is
// inserted in one range.
func (v *View) SetFilterType(t types.FilterType) {
	v.mustNotBeDispatching("SetFilterType")
	if t == v.state.Type {
		return
	}

	state := v.state
	state.Type = t
	v.switchPartition(state)
	v.emit(types.Event{Kind: types.FilterTypeChanged})
	v.updatePopulated()
}

// SetFilterPattern changes the text pattern
func (v *View) SetFilterPattern(pattern string) {
	v.mustNotBeDispatching("SetFilterPattern")
	if pattern == v.state.Pattern {
		return
	}

	state := v.state
	state.Pattern = pattern
	v.refilter(state)
	v.emit(types.Event{Kind: types.FilterPatternChanged})
}

// SetRequiredProperty changes the required property mask
func (v *View) SetRequiredProperty(mask types.RequiredProperty) {
	v.mustNotBeDispatching("SetRequiredProperty")
	if mask == v.state.RequiredProperty {
		return
	}

	state := v.state
	state.RequiredProperty = mask
	v.refilter(state)
	v.emit(types.Event{Kind: types.RequiredPropertyChanged})
}

// SetSearchByFirstNameCharacter toggles first-letter mode
func (v *View) SetSearchByFirstNameCharacter(enabled bool) {
	v.mustNotBeDispatching("SetSearchByFirstNameCharacter")
	if enabled == v.state.SearchByFirstNameCharacter {
		return
	}

	state := v.state
	state.SearchByFirstNameCharacter = enabled
	v.refilter(state)
	v.emit(types.Event{Kind: types.SearchByFirstNameCharacterChanged})
}

// SetFilterState applies every field at once. A type change rebuilds the
// rows as SetFilterType does; otherwise a single delta covers all fields.
// One signal is emitted per changed field, after the row events.
func (v *View) SetFilterState(state types.FilterState) {
	v.mustNotBeDispatching("SetFilterState")
	old := v.state
	if state == old {
		return
	}

	if state.Type != old.Type {
		v.switchPartition(state)
	} else {
		v.refilter(state)
	}

	if state.Type != old.Type {
		v.emit(types.Event{Kind: types.FilterTypeChanged})
	}
	if state.Pattern != old.Pattern {
		v.emit(types.Event{Kind: types.FilterPatternChanged})
	}
	if state.RequiredProperty != old.RequiredProperty {
		v.emit(types.Event{Kind: types.RequiredPropertyChanged})
	}
	if state.SearchByFirstNameCharacter != old.SearchByFirstNameCharacter {
		v.emit(types.Event{Kind: types.SearchByFirstNameCharacterChanged})
	}
	v.updatePopulated()
}

// switchPartition empties the rows, moves the subscription and fills the
// rows again from the new partition
func (v *View) switchPartition(state types.FilterState) {
	if len(v.rows) > 0 {
		v.removeRows(0, len(v.rows))
	}

	v.detach()
	v.state = state
	v.filter = matching.Compile(state)
	v.attach()

	if rows := v.collect(v.filter); len(rows) > 0 {
		v.insertRows(0, rows)
	}
	v.log.Debug("filter type changed", "partition", state.Type.String(), "rows", len(v.rows))
}

// refilter recomputes membership against the unchanged partition order and
// applies the range delta op by op
func (v *View) refilter(state types.FilterState) {
	v.state = state
	v.filter = matching.Compile(state)
	if !v.subscribed {
		return
	}

	order := v.src.Records(state.Type)
	next := roaring.New()
	for _, id := range order {
		if c, ok := v.src.Record(id); ok && v.filter.Matches(c) {
			next.Add(uint32(id))
		}
	}

	current := v.members.Clone()
	ops := delta.Compute(order,
		func(id types.RecordID) bool { return current.Contains(uint32(id)) },
		func(id types.RecordID) bool { return next.Contains(uint32(id)) },
	)
	for _, op := range ops {
		switch op.Kind {
		case delta.Remove:
			v.removeRows(op.Start, op.Count())
		case delta.Insert:
			v.insertRows(op.Start, op.IDs)
		}
	}

	v.log.Debug("filter changed",
		"pattern", state.Pattern,
		"required", state.RequiredProperty.String(),
		"first_letter", state.SearchByFirstNameCharacter,
		"ops", len(ops),
		"rows", len(v.rows))
}
