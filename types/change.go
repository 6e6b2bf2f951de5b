package types

// ChangeKind identifies a store notification
type ChangeKind int

const (
	// RecordsInserted: IDs now occupy positions Position.. of the partition
	RecordsInserted ChangeKind = iota
	// RecordsRemoved: IDs used to occupy positions Position.. and are gone
	RecordsRemoved
	// RecordChanged: the single record at Position changed in place
	RecordChanged
	// PartitionPopulated: the initial fetch of the partition completed
	PartitionPopulated
)

func (k ChangeKind) String() string {
	switch k {
	case RecordsInserted:
		return "inserted"
	case RecordsRemoved:
		return "removed"
	case RecordChanged:
		return "changed"
	case PartitionPopulated:
		return "populated"
	}
	return "unknown"
}

// Change is a typed message delivered by a store to its partition listeners.
// Positions are expressed in the partition's canonical order as it stands
// once the message is delivered.
type Change struct {
	Kind      ChangeKind
	Partition FilterType
	Position  int
	IDs       []RecordID
}

// Listener receives change messages for one partition
type Listener interface {
	HandleChange(Change)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(Change)

// HandleChange implements Listener
func (f ListenerFunc) HandleChange(c Change) { f(c) }
