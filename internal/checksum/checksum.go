// Package checksum computes a streaming xxHash64 digest over whatever
// is written through its Writer (the encoder streams each finished
// output file through it), matching the hashing approach mebo's
// internal/hash package uses for its content IDs, applied here to
// whole-file integrity rather than a single identifier.
package checksum

import (
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Writer wraps an io.Writer and accumulates an xxHash64 digest of
// everything written through it.
type Writer struct {
	w io.Writer
	h *xxhash.Digest
}

// NewWriter wraps w, tee-ing every write into a running digest.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, h: xxhash.New()}
}

func (cw *Writer) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		cw.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the lowercase hex digest of everything written so far.
func (cw *Writer) Sum() string {
	return hex.EncodeToString(cw.h.Sum(nil))
}
