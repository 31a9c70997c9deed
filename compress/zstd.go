package compress

// ZstdCompressor provides Zstandard compression. Prefer this over S2/LZ4
// when compression ratio matters more than speed — e.g. archiving a
// grouped spill file for later replay/debugging rather than discarding
// it after one encode.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
