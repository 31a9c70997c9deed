package edge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/group"
)

func TestEncodeInvalidRecordContributesNothing(t *testing.T) {
	items := []event.Item{event.NewItem(1, 5)}
	prev := make([]event.Item, 3)
	rec := group.Record{ItemZero: 0, NumItems: 1, Timestamp: 1} // invalid: low byte set

	out := Encode(items, prev, rec, nil)
	require.Empty(t, out)
}

func TestEncodeAlwaysEmitsTimestamp(t *testing.T) {
	items := []event.Item{event.NewItem(1, 5)}
	prev := make([]event.Item, 3)
	rec := group.Record{ItemZero: 0, NumItems: 1, Timestamp: 10 << 8}

	out := Encode(items, prev, rec, nil)
	require.Len(t, out, 2)
	require.Equal(t, event.NewItem(0, 10), out[0])
	require.Equal(t, event.NewItem(1, 5), out[1])
}

func TestEncodeSuppressesUnchangedFieldButRepeatsTimestamp(t *testing.T) {
	items := []event.Item{event.NewItem(1, 5), event.NewItem(1, 5), event.NewItem(2, 9)}
	prev := make([]event.Item, 3)

	rec1 := group.Record{ItemZero: 0, NumItems: 1, Timestamp: 10 << 8}
	out1 := Encode(items, prev, rec1, nil)
	require.Len(t, out1, 2) // delta + field 1

	// Same delta (10), same field-1 value: the timestamp item is still
	// emitted unconditionally, but field 1 is suppressed and only the
	// changed field 2 joins it.
	rec2 := group.Record{ItemZero: 1, NumItems: 2, Timestamp: 10 << 8}
	out2 := Encode(items, prev, rec2, nil)
	require.Len(t, out2, 2)
	require.Equal(t, event.NewItem(0, 10), out2[0])
	require.Equal(t, event.NewItem(2, 9), out2[1])
}

func TestEncodeReusesOutSlice(t *testing.T) {
	items := []event.Item{event.NewItem(1, 1)}
	prev := make([]event.Item, 2)
	rec := group.Record{ItemZero: 0, NumItems: 1, Timestamp: 1 << 8}

	out := make([]event.Item, 0, 8)
	out = Encode(items, prev, rec, out)
	require.Len(t, out, 2)
	require.Equal(t, 8, cap(out))
}
