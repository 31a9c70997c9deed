// Package edge implements C3, the edge encoder: for each grouped
// record it emits only the items whose field value changed since the
// actor's previous event (spec.md §4.3).
package edge

import (
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/group"
)

// Encode appends to out the record's timestamp-delta item followed by
// the items of items[rec.ItemZero:rec.ItemZero+rec.NumItems] that
// differ from prevItems[field], updating prevItems in place. Invalid
// records (rec.Timestamp&0xFF != 0) contribute nothing.
//
// The record's decoded delta is synthesized as a field-0 item and
// emitted unconditionally, ahead of any real fields — it is never
// edge-encoded against prevItems[0]. field id 0 is reserved for the
// timestamp precisely so it can never collide with a real field
// (spec.md §4.3; the original's edge_encode_items likewise never
// touches field 0, leaving choose_grams to emit ev->timestamp on every
// event). Every valid event therefore contributes at least one item,
// even one whose delta and fields are all unchanged from the previous
// event (spec.md S1, S5).
//
// prevItems must have length equal to the number of fields and must be
// zeroed at the start of each actor's trail (spec.md §3 invariant).
func Encode(items []event.Item, prevItems []event.Item, rec group.Record, out []event.Item) []event.Item {
	if !rec.Valid() {
		return out
	}

	out = append(out, event.NewItem(0, uint64(rec.Delta())))

	for j := rec.ItemZero; j < rec.ItemZero+uint64(rec.NumItems); j++ {
		it := items[j]
		f := it.Field()
		if prevItems[f] != it {
			prevItems[f] = it
			out = append(out, it)
		}
	}
	return out
}
