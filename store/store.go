// Package store keeps the authoritative contact records and their ordered
// partitions, and notifies partition listeners of every change.
//
// A Store is single threaded: every mutation and every read must happen on
// the same goroutine, and listeners must not mutate the store while a
// notification is being delivered.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arthur-debert/contactview/types"
)

// ErrRecordNotFound is returned when an id does not name a live record
var ErrRecordNotFound = errors.New("record not found")

// Store holds contact records and one ordered partition per filter type
type Store struct {
	log        *slog.Logger
	order      types.DisplayLabelOrder
	records    map[types.RecordID]*types.Contact
	labels     *labelCache
	partitions map[types.FilterType]*partition
	nextID     types.RecordID

	subscribers []subscriber
	delivering  bool
}

type subscriber struct {
	handle    uuid.UUID
	partition types.FilterType
	listener  types.Listener
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithDisplayLabelOrder sets the initial display label order
func WithDisplayLabelOrder(order types.DisplayLabelOrder) Option {
	return func(s *Store) {
		s.order = order
	}
}

// New creates an empty store with no populated partition
func New(opts ...Option) *Store {
	s := &Store{
		log:        slog.New(slog.DiscardHandler),
		records:    make(map[types.RecordID]*types.Contact),
		partitions: make(map[types.FilterType]*partition),
		nextID:     1,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.labels = newLabelCache(s.order)
	for _, t := range types.FilterTypes {
		s.partitions[t] = newPartition(t, s.comparator(t))
	}
	return s
}

// Subscribe registers a listener for one partition and returns the handle
// used to unsubscribe. Subscribing to an unknown partition is a programming
// error and panics.
func (s *Store) Subscribe(t types.FilterType, l types.Listener) uuid.UUID {
	if _, ok := s.partitions[t]; !ok {
		panic(fmt.Sprintf("store: subscribe to unknown partition %v", t))
	}

	handle := uuid.New()
	s.subscribers = append(s.subscribers, subscriber{handle: handle, partition: t, listener: l})
	s.log.Debug("listener subscribed", "partition", t.String(), "handle", handle.String())
	return handle
}

// Unsubscribe removes a listener. Unknown handles are ignored.
func (s *Store) Unsubscribe(handle uuid.UUID) {
	for i, sub := range s.subscribers {
		if sub.handle == handle {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			s.log.Debug("listener unsubscribed", "partition", sub.partition.String(), "handle", handle.String())
			return
		}
	}
}

// notify delivers a change to every listener of its partition, in
// subscription order
func (s *Store) notify(c types.Change) {
	s.delivering = true
	defer func() { s.delivering = false }()

	// A listener may unsubscribe while being notified
	subs := append([]subscriber(nil), s.subscribers...)
	for _, sub := range subs {
		if sub.partition == c.Partition {
			sub.listener.HandleChange(c)
		}
	}
}

// mustNotBeDelivering guards against mutations issued from a listener
func (s *Store) mustNotBeDelivering(op string) {
	if s.delivering {
		panic(fmt.Sprintf("store: %s called while delivering a notification", op))
	}
}

// Record returns the live record for an id. The returned contact is owned by
// the store and must not be modified.
func (s *Store) Record(id types.RecordID) (*types.Contact, bool) {
	c, ok := s.records[id]
	return c, ok
}

// Records returns the ids of a partition in canonical order. The slice is
// owned by the store and is only valid until the next mutation.
func (s *Store) Records(t types.FilterType) []types.RecordID {
	p, ok := s.partitions[t]
	if !ok {
		return nil
	}
	return p.ids
}

// Len returns the number of records in a partition
func (s *Store) Len(t types.FilterType) int {
	return len(s.Records(t))
}

// IDAt returns the id at a position of a partition
func (s *Store) IDAt(t types.FilterType, position int) (types.RecordID, bool) {
	ids := s.Records(t)
	if position < 0 || position >= len(ids) {
		return 0, false
	}
	return ids[position], true
}

// IsPopulated reports whether the initial fetch of a partition completed
func (s *Store) IsPopulated(t types.FilterType) bool {
	p, ok := s.partitions[t]
	return ok && p.populated
}

// DisplayLabel returns the cached display label of a record
func (s *Store) DisplayLabel(id types.RecordID) string {
	c, ok := s.records[id]
	if !ok {
		return ""
	}
	return s.labels.get(c)
}

// DisplayLabelOrder returns the current display label order
func (s *Store) DisplayLabelOrder() types.DisplayLabelOrder {
	return s.order
}
