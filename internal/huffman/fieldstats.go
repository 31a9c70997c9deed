package huffman

import "math/bits"

// FieldStats is the per-field bit-width table produced by C7: how many
// bits are needed to hold a literal (escaped) value of each field. The
// timestamp field (index 0) is sized from maxTimestampDelta rather
// than from fieldCardinalities (spec.md §4.5).
type FieldStats struct {
	BitWidths []uint8
}

// BuildFieldStats computes bit widths for numFields fields from their
// cardinalities, overriding field 0 with the width needed for
// maxTimestampDelta (C7).
func BuildFieldStats(fieldCardinalities []uint64, numFields uint32, maxTimestampDelta uint32) FieldStats {
	widths := make([]uint8, numFields)
	for f := uint32(0); f < numFields; f++ {
		var maxVal uint64
		if int(f) < len(fieldCardinalities) {
			maxVal = fieldCardinalities[f]
		}
		widths[f] = bitWidth(maxVal)
	}
	if numFields > 0 {
		widths[0] = bitWidth(uint64(maxTimestampDelta))
	}
	return FieldStats{BitWidths: widths}
}

// bitWidth returns ceil(log2(maxVal)), with maxVal == 0 or 1 both
// needing a single bit to represent the (only) value.
func bitWidth(maxVal uint64) uint8 {
	if maxVal <= 1 {
		return 1
	}
	return uint8(bits.Len64(maxVal - 1)) //nolint:gosec
}
