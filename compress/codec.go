// Package compress provides the block compression codecs used for the
// temporary grouped spill file and for trails.codebook (see
// SPEC_FULL.md §3.3). Trail bodies are never run through this package:
// they are Huffman-coded already and sit at the entropy floor.
package compress

import (
	"fmt"

	"github.com/charsyam/traildb/format"
)

// Compressor compresses a full buffer in one shot.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a full buffer in one shot, previously
// produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns the Codec for the given compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	default:
		return nil, fmt.Errorf("compress: invalid compression type: %v", compressionType)
	}
}
