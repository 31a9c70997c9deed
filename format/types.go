// Package format declares the small enumerations shared by the on-disk
// artifacts: the compression algorithm applied to the grouped spill
// file and to trails.codebook (see SPEC_FULL.md §3.3).
package format

// CompressionType selects the codec used for the temporary grouped
// file and for trails.codebook. It does not apply to trail bodies:
// those are already Huffman-coded and sit at (or near) the entropy
// floor, so re-compressing them is counter-productive.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone disables compression; reproduces the original's raw fixed-record format.
	CompressionS2   CompressionType = 0x2 // CompressionS2 uses klauspost/compress/s2.
	CompressionLZ4  CompressionType = 0x3 // CompressionLZ4 uses pierrec/lz4/v4.
	CompressionZstd CompressionType = 0x4 // CompressionZstd uses klauspost/compress/zstd (pure Go).
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}
