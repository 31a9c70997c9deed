// Package group implements C1 (timestamp range scan) and C2 (grouper):
// it walks the per-actor back-linked event lists, sorts each actor's
// events by timestamp, delta-encodes timestamps, and spills the result
// as a flat stream of fixed-size records to a temporary file (spec.md
// §4.1-4.2).
package group

import "encoding/binary"

// RecordSize is the on-disk size in bytes of one Record:
// cookie_id(4) + item_zero(8) + num_items(4) + timestamp(4).
const RecordSize = 20

// Record is the grouped record intermediate form described in spec.md
// §3: one per input event, in actor-contiguous, time-sorted order.
// Timestamp holds the encoded delta (§4.2), whose low byte is 0 for
// valid records and 1 for invalid ones.
type Record struct {
	CookieID  uint32
	ItemZero  uint64
	NumItems  uint32
	Timestamp uint32
}

// Valid reports whether the record's encoded delta marks it as usable
// by downstream passes (§4.3: "if ev.timestamp & 0xFF != 0 the event
// is invalid").
func (r Record) Valid() bool {
	return r.Timestamp&0xFF == 0
}

// Delta returns the decoded timestamp delta of a valid record.
func (r Record) Delta() uint32 {
	return r.Timestamp >> 8
}

// MarshalTo encodes r into buf, which must be at least RecordSize bytes.
func (r Record) MarshalTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], r.CookieID)
	binary.LittleEndian.PutUint64(buf[4:12], r.ItemZero)
	binary.LittleEndian.PutUint32(buf[12:16], r.NumItems)
	binary.LittleEndian.PutUint32(buf[16:20], r.Timestamp)
}

// UnmarshalRecord decodes a Record from buf, which must be at least
// RecordSize bytes.
func UnmarshalRecord(buf []byte) Record {
	return Record{
		CookieID:  binary.LittleEndian.Uint32(buf[0:4]),
		ItemZero:  binary.LittleEndian.Uint64(buf[4:12]),
		NumItems:  binary.LittleEndian.Uint32(buf[12:16]),
		Timestamp: binary.LittleEndian.Uint32(buf[16:20]),
	}
}
