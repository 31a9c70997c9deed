package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemPacking(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		it := NewItem(7, 1234)
		require.Equal(t, uint8(7), it.Field())
		require.Equal(t, uint64(1234), it.Value())
	})

	t.Run("FieldZero", func(t *testing.T) {
		it := NewItem(0, 99)
		require.Equal(t, uint8(0), it.Field())
		require.Equal(t, uint64(99), it.Value())
	})

	t.Run("MaxField", func(t *testing.T) {
		it := NewItem(255, 1)
		require.Equal(t, uint8(255), it.Field())
	})

	t.Run("ZeroValue", func(t *testing.T) {
		it := NewItem(3, 0)
		require.Equal(t, uint64(0), it.Value())
		require.Equal(t, uint8(3), it.Field())
	})
}

func TestInputCounts(t *testing.T) {
	in := &Input{
		Events:         make([]Event, 5),
		CookiePointers: []uint64{1, 4},
	}
	require.Equal(t, 2, in.NumCookies())
	require.Equal(t, 5, in.NumEvents())
}
