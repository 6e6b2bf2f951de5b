package types

import "fmt"

// EventKind identifies what a view event reports
type EventKind int

const (
	// RangeInserted: Count rows were inserted at Start
	RangeInserted EventKind = iota
	// RangeRemoved: Count rows were removed starting at Start
	RangeRemoved
	// RowChanged: the record at Start changed in place
	RowChanged

	PopulatedChanged
	FilterTypeChanged
	FilterPatternChanged
	RequiredPropertyChanged
	SearchByFirstNameCharacterChanged
)

var eventKindNames = map[EventKind]string{
	RangeInserted:                     "inserted",
	RangeRemoved:                      "removed",
	RowChanged:                        "changed",
	PopulatedChanged:                  "populated-changed",
	FilterTypeChanged:                 "filter-type-changed",
	FilterPatternChanged:              "filter-pattern-changed",
	RequiredPropertyChanged:           "required-property-changed",
	SearchByFirstNameCharacterChanged: "search-by-first-name-character-changed",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsRowEvent reports whether the event changes or touches the row list
func (k EventKind) IsRowEvent() bool {
	return k == RangeInserted || k == RangeRemoved || k == RowChanged
}

// Event is emitted by a view to its consumers.
// Indices are valid against the row list at the moment the event is
// delivered, so consumers must apply events in emission order.
type Event struct {
	Kind  EventKind `json:"kind" yaml:"kind"`
	Start int       `json:"start" yaml:"start"`
	Count int       `json:"count,omitempty" yaml:"count,omitempty"`

	// IDs holds the inserted records for RangeInserted and the removed
	// records for RangeRemoved.
	IDs []RecordID `json:"ids,omitempty" yaml:"ids,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case RangeInserted, RangeRemoved:
		return fmt.Sprintf("%s [%d,%d]", e.Kind, e.Start, e.Start+e.Count-1)
	case RowChanged:
		return fmt.Sprintf("%s [%d]", e.Kind, e.Start)
	}
	return e.Kind.String()
}
