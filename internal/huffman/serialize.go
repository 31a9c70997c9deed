package huffman

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/charsyam/traildb/errs"
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/gram"
)

// entrySize is the fixed on-disk size of one codebook entry:
// bigram flag(1) + item A(8) + item B(8) + code bits(4) + code length(1).
const entrySize = 1 + 8 + 8 + 4 + 1

// Serialize encodes cb as the opaque blob spec.md §4.8 calls the
// Huffman collaborator's contract: a header giving the entry count,
// the escape code, then one fixed-size record per gram, in gramLess
// order. Sorting before emitting makes the blob byte-identical across
// runs for the same codebook, matching the determinism BuildCodemap
// already establishes by pre-sorting grams ahead of tie-break ID
// assignment — without it, ranging over cb.Codes would serialize
// entries in Go's randomized map order. Callers compress the result
// before writing trails.codebook (SPEC_FULL.md §3.3); the format here
// is uncompressed.
func (cb *Codebook) Serialize() []byte {
	out := make([]byte, 0, 13+entrySize*(len(cb.Codes)+1))

	var hdr [9]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(len(cb.Codes))) //nolint:gosec
	out = append(out, hdr[:8]...)
	out = appendEntry(out, gram.Gram{}, cb.Escape)

	grams := make([]gram.Gram, 0, len(cb.Codes))
	for g := range cb.Codes {
		grams = append(grams, g)
	}
	sort.Slice(grams, func(i, j int) bool { return gramLess(grams[i], grams[j]) })

	for _, g := range grams {
		out = appendEntry(out, g, cb.Codes[g])
	}
	return out
}

func appendEntry(out []byte, g gram.Gram, code Code) []byte {
	var buf [entrySize]byte
	if g.Bigram {
		buf[0] = 1
	}
	binary.LittleEndian.PutUint64(buf[1:9], uint64(g.A))
	binary.LittleEndian.PutUint64(buf[9:17], uint64(g.B))
	binary.LittleEndian.PutUint32(buf[17:21], code.Bits)
	buf[21] = code.Length
	return append(out, buf[:]...)
}

// DeserializeCodebook parses the Serialize format back into a
// Codebook. It is not exercised by the encoder (decoding is a
// non-goal) but is kept so the wire format is round-trip testable.
func DeserializeCodebook(data []byte) (*Codebook, error) {
	if len(data) < 8+entrySize {
		return nil, fmt.Errorf("%w: codebook blob too short", errs.ErrInvalidHeader)
	}

	count := binary.LittleEndian.Uint64(data[0:8])
	off := 8

	g, escape, err := parseEntry(data[off : off+entrySize])
	if err != nil {
		return nil, err
	}
	_ = g
	off += entrySize

	cb := &Codebook{Codes: make(map[gram.Gram]Code, count), Escape: escape}
	for i := uint64(0); i < count; i++ {
		if off+entrySize > len(data) {
			return nil, fmt.Errorf("%w: codebook blob truncated", errs.ErrInvalidHeader)
		}
		g, code, err := parseEntry(data[off : off+entrySize])
		if err != nil {
			return nil, err
		}
		cb.Codes[g] = code
		off += entrySize
	}
	return cb, nil
}

func parseEntry(buf []byte) (gram.Gram, Code, error) {
	g := gram.Gram{
		A:      event.Item(binary.LittleEndian.Uint64(buf[1:9])),
		B:      event.Item(binary.LittleEndian.Uint64(buf[9:17])),
		Bigram: buf[0] == 1,
	}
	code := Code{
		Bits:   binary.LittleEndian.Uint32(buf[17:21]),
		Length: buf[21],
	}
	return g, code, nil
}
