//go:build nobuild

package compress

import "github.com/valyala/gozstd"

// Compress compresses data using cgo-backed Zstandard. Disabled by the
// "nobuild" tag (never satisfied) so the cgo dependency is present in
// go.mod without being part of any real build — the same posture the
// teacher repo takes toward this exact package.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
