package view

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/arthur-debert/contactview/types"
)

// EventSource is anything emitting row events, such as a View
type EventSource interface {
	Subscribe(fn func(types.Event)) uuid.UUID
	Unsubscribe(handle uuid.UUID)
	IDs() []types.RecordID
}

// Mirror keeps a copy of a view's rows by replaying its events only
type Mirror struct {
	src    EventSource
	handle uuid.UUID
	ids    []types.RecordID
	err    error
}

// NewMirror starts mirroring src from its current rows
func NewMirror(src EventSource) *Mirror {
	m := &Mirror{src: src, ids: src.IDs()}
	m.handle = src.Subscribe(m.apply)
	return m
}

func (m *Mirror) apply(e types.Event) {
	if m.err != nil {
		return
	}

	switch e.Kind {
	case types.RangeInserted:
		if e.Start < 0 || e.Start > len(m.ids) || len(e.IDs) != e.Count {
			m.err = fmt.Errorf("failed to apply %s to %d rows", e, len(m.ids))
			return
		}
		m.ids = slices.Insert(m.ids, e.Start, e.IDs...)
	case types.RangeRemoved:
		if e.Start < 0 || e.Count < 0 || e.Start+e.Count > len(m.ids) {
			m.err = fmt.Errorf("failed to apply %s to %d rows", e, len(m.ids))
			return
		}
		m.ids = slices.Delete(m.ids, e.Start, e.Start+e.Count)
	case types.RowChanged:
		if e.Start < 0 || e.Start >= len(m.ids) {
			m.err = fmt.Errorf("failed to apply %s to %d rows", e, len(m.ids))
		}
	}
}

// IDs returns a copy of the mirrored rows
func (m *Mirror) IDs() []types.RecordID {
	return slices.Clone(m.ids)
}

// Err returns the first event that could not be applied
func (m *Mirror) Err() error {
	return m.err
}

// Verify compares the mirrored rows with the source rows
func (m *Mirror) Verify() error {
	if m.err != nil {
		return m.err
	}
	if want := m.src.IDs(); !slices.Equal(m.ids, want) {
		return fmt.Errorf("mirror diverged: have %v, want %v", m.ids, want)
	}
	return nil
}

// Close stops mirroring
func (m *Mirror) Close() {
	m.src.Unsubscribe(m.handle)
}
