package compress

import "github.com/klauspost/compress/s2"

// S2Compressor provides S2 compression, a fast Snappy-compatible codec
// from klauspost/compress. It is the default codec for trails.codebook
// (§3.3): codebooks are small, read back in a single shot, and tend to
// be runs of similar code lengths that S2 shrinks cheaply.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data using S2.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2-compressed data.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
