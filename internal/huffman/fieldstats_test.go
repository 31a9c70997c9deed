package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildFieldStatsTimestampFieldUsesDelta(t *testing.T) {
	fstats := BuildFieldStats([]uint64{0, 5, 200}, 3, 1000)
	require.Equal(t, bitWidth(1000), fstats.BitWidths[0])
}

func TestBuildFieldStatsRegularFieldsUseCardinality(t *testing.T) {
	fstats := BuildFieldStats([]uint64{0, 5, 200}, 3, 1000)
	require.Equal(t, bitWidth(5), fstats.BitWidths[1])
	require.Equal(t, bitWidth(200), fstats.BitWidths[2])
}

func TestBuildFieldStatsMissingCardinalityDefaultsToOneBit(t *testing.T) {
	fstats := BuildFieldStats(nil, 2, 0)
	require.Equal(t, uint8(1), fstats.BitWidths[1])
}

func TestBitWidth(t *testing.T) {
	require.Equal(t, uint8(1), bitWidth(0))
	require.Equal(t, uint8(1), bitWidth(1))
	require.Equal(t, uint8(1), bitWidth(2))
	require.Equal(t, uint8(8), bitWidth(255))
	require.Equal(t, uint8(8), bitWidth(256))
	require.Equal(t, uint8(9), bitWidth(257))
}
