// Package filewatch implements the file-change event coalescer: a
// rate-limiter over raw "changed" events that also synthesizes a
// terminal ChangesDoneHint once a burst goes quiet (§3, §4.7 of the
// design this module is grounded on).
package filewatch

// EventKind is the vocabulary a raw monitor emits (§6).
type EventKind int

const (
	Changed EventKind = iota
	ChangesDoneHint
	Deleted
	Created
	AttributeChanged
	PreUnmount
	Unmounted
	Moved
)

func (k EventKind) String() string {
	switch k {
	case Changed:
		return "Changed"
	case ChangesDoneHint:
		return "ChangesDoneHint"
	case Deleted:
		return "Deleted"
	case Created:
		return "Created"
	case AttributeChanged:
		return "AttributeChanged"
	case PreUnmount:
		return "PreUnmount"
	case Unmounted:
		return "Unmounted"
	case Moved:
		return "Moved"
	default:
		return "Unknown"
	}
}
