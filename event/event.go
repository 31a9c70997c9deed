// Package event defines the in-memory event graph that the trailenc
// encoder consumes: a flat array of Events, a flat array of Items, and
// the per-actor back-linked trail anchors (cookie pointers).
//
// The loader that produces an Input is an external collaborator (see
// spec.md §1); this package only defines the shapes it must hand to
// the encoder.
package event

// FieldBits is the number of low bits of an Item reserved for the
// field id, capping the system at 256 distinct fields. The remaining
// 56 bits hold the value id.
const FieldBits = 8

// FieldMask isolates the field id from a packed Item.
const FieldMask = (1 << FieldBits) - 1

// Item is a packed (field, value) pair: item = (valueID << FieldBits) | fieldID.
// Field id 0 denotes the timestamp field (§3).
type Item uint64

// NewItem packs a field id and value id into an Item.
func NewItem(field uint8, value uint64) Item {
	return Item(value<<FieldBits | uint64(field))
}

// Field extracts the field id from a packed Item.
func (it Item) Field() uint8 {
	return uint8(it & FieldMask)
}

// Value extracts the value id from a packed Item.
func (it Item) Value() uint64 {
	return uint64(it) >> FieldBits
}

// Event is one timestamped tuple of items belonging to one actor,
// plus the back-link to the actor's chronologically previous event.
//
// PrevEventIdx is 0 when there is no predecessor, or 1+index otherwise
// (the "biased by 1" convention described in spec.md §3/§4.2).
type Event struct {
	Timestamp    uint32
	ItemZero     uint64
	NumItems     uint32
	PrevEventIdx uint64
}

// Input is the flat, immutable event graph handed to the encoder.
// Events of different actors may be interleaved; CookiePointers[c] is
// the index of the last (most recent) event belonging to actor c.
type Input struct {
	Events             []Event
	Items              []Item
	CookiePointers     []uint64
	NumFields          uint32
	FieldCardinalities []uint64
}

// NumCookies returns the number of distinct actors in the input.
func (in *Input) NumCookies() int {
	return len(in.CookiePointers)
}

// NumEvents returns the number of events in the input.
func (in *Input) NumEvents() int {
	return len(in.Events)
}
