// Package view maintains a filtered, ordered list of contact rows over one
// store partition and reports every change to it as contiguous range events.
//
// A View never sorts: its rows are always the subsequence of the partition
// order selected by the current filter. Events carry indices valid against
// the row list at the moment they are delivered, so a consumer that applies
// them in order keeps an exact copy of the rows.
package view

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"

	"github.com/arthur-debert/contactview/internal/matching"
	"github.com/arthur-debert/contactview/types"
)

// Source is the record store a View reads from. *store.Store satisfies it.
type Source interface {
	Subscribe(t types.FilterType, l types.Listener) uuid.UUID
	Unsubscribe(handle uuid.UUID)
	Record(id types.RecordID) (*types.Contact, bool)
	Records(t types.FilterType) []types.RecordID
	IsPopulated(t types.FilterType) bool
}

// View is a filtered subsequence of one partition.
// A View is not safe for concurrent use.
type View struct {
	log    *slog.Logger
	src    Source
	state  types.FilterState
	filter *matching.Filter

	rows    []types.RecordID
	members *roaring.Bitmap

	handle     uuid.UUID
	subscribed bool
	populated  bool

	observers   []observer
	dispatching bool
}

type observer struct {
	handle uuid.UUID
	fn     func(types.Event)
}

// Option configures a View
type Option func(*View)

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.log = logger
		}
	}
}

// WithFilterState sets the filter the view starts with
func WithFilterState(state types.FilterState) Option {
	return func(v *View) {
		v.state = state
	}
}

// New creates a view over src. The initial rows are built without emitting
// events; the default filter selects the whole FilterAll partition.
func New(src Source, opts ...Option) *View {
	v := &View{
		log:     slog.New(slog.DiscardHandler),
		src:     src,
		state:   types.DefaultFilterState(),
		members: roaring.New(),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.filter = matching.Compile(v.state)
	v.attach()
	v.rows = v.collect(v.filter)
	v.members.AddMany(toUint32(v.rows))
	v.populated = v.computePopulated()
	return v
}

// Close detaches the view from its source and drops its rows and observers
// without emitting events
func (v *View) Close() {
	v.mustNotBeDispatching("Close")
	v.detach()
	v.rows = nil
	v.members.Clear()
	v.observers = nil
	v.populated = false
}

// Subscribe registers an event observer. Observers are called in
// registration order and must not mutate the view.
func (v *View) Subscribe(fn func(types.Event)) uuid.UUID {
	handle := uuid.New()
	v.observers = append(v.observers, observer{handle: handle, fn: fn})
	return handle
}

// Unsubscribe removes an observer. Unknown handles are ignored.
func (v *View) Unsubscribe(handle uuid.UUID) {
	for i, o := range v.observers {
		if o.handle == handle {
			v.observers = append(v.observers[:i:i], v.observers[i+1:]...)
			return
		}
	}
}

func (v *View) emit(e types.Event) {
	v.dispatching = true
	defer func() { v.dispatching = false }()

	for _, o := range slices.Clone(v.observers) {
		o.fn(e)
	}
}

func (v *View) mustNotBeDispatching(op string) {
	if v.dispatching {
		panic(fmt.Sprintf("view: %s called while dispatching an event", op))
	}
}

// attach subscribes to the partition named by the current filter type.
// FilterNone has no partition.
func (v *View) attach() {
	if v.state.Type == types.FilterNone {
		return
	}
	v.handle = v.src.Subscribe(v.state.Type, v)
	v.subscribed = true
	v.log.Debug("view attached", "partition", v.state.Type.String())
}

func (v *View) detach() {
	if !v.subscribed {
		return
	}
	v.src.Unsubscribe(v.handle)
	v.subscribed = false
	v.log.Debug("view detached", "partition", v.state.Type.String())
}

// collect returns the partition members accepted by f, in partition order
func (v *View) collect(f *matching.Filter) []types.RecordID {
	if !v.subscribed {
		return nil
	}

	var ids []types.RecordID
	for _, id := range v.src.Records(v.state.Type) {
		if c, ok := v.src.Record(id); ok && f.Matches(c) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (v *View) computePopulated() bool {
	return v.subscribed && v.src.IsPopulated(v.state.Type)
}

// updatePopulated emits PopulatedChanged when the populated state flipped
func (v *View) updatePopulated() {
	populated := v.computePopulated()
	if populated == v.populated {
		return
	}
	v.populated = populated
	v.log.Debug("populated changed", "populated", populated)
	v.emit(types.Event{Kind: types.PopulatedChanged})
}

// insertRows inserts ids at row index start and reports it
func (v *View) insertRows(start int, ids []types.RecordID) {
	v.rows = slices.Insert(v.rows, start, ids...)
	v.members.AddMany(toUint32(ids))
	v.emit(types.Event{Kind: types.RangeInserted, Start: start, Count: len(ids), IDs: ids})
}

// removeRows removes count rows from row index start and reports it
func (v *View) removeRows(start, count int) {
	ids := slices.Clone(v.rows[start : start+count])
	v.rows = slices.Delete(v.rows, start, start+count)
	for _, id := range ids {
		v.members.Remove(uint32(id))
	}
	v.emit(types.Event{Kind: types.RangeRemoved, Start: start, Count: count, IDs: ids})
}

func toUint32(ids []types.RecordID) []uint32 {
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}
