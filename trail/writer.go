// Package trail implements C8, the trail writer: a third streaming
// pass over the grouped file that emits trails.data, a TOC of byte
// offsets followed by one bit-packed, Huffman-coded trail per actor
// (spec.md §4.6).
package trail

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/charsyam/traildb/errs"
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/bitio"
	"github.com/charsyam/traildb/internal/edge"
	"github.com/charsyam/traildb/internal/gram"
	"github.com/charsyam/traildb/internal/group"
	"github.com/charsyam/traildb/internal/huffman"
)

// TOCEntrySize is the on-disk size of one TOC slot (spec.md §4.6: "a
// little-endian u32").
const TOCEntrySize = 4

// MaxFileOffset is the 4GB-minus-one cap on trails.data's size
// (spec.md §4.6, §3 invariants).
const MaxFileOffset = 1<<32 - 1

// bitBufSize is the per-actor scratch bit buffer size spec.md §5
// mandates: "exactly 2^32/8 + 8 bytes (512 MiB). Reused across actors".
const bitBufSize = 1<<32/8 + 8

// Write streams r (freshly rewound) once, emitting one trail per actor
// 0..numCookies-1 in order, and returns the final file_offs (the
// trails.data file size). out must support random access: the TOC is
// filled in as each actor's starting offset becomes known, interleaved
// with appending that actor's trail bytes at the growing end of the
// file.
func Write(out io.WriteSeeker, r *group.Reader, items []event.Item, numCookies uint64, numFields uint32, cb *huffman.Codebook, gramFreqs gram.GramFreqs, unigramFreqs gram.UnigramFreqs, fstats huffman.FieldStats) (uint64, error) {
	tocSize := TOCEntrySize * (numCookies + 1)
	if err := writeZeros(out, tocSize); err != nil {
		return 0, fmt.Errorf("%w: reserving TOC: %v", errs.ErrIoFailure, err)
	}

	bitBuf := make([]byte, bitBufSize)
	prevItems := make([]event.Item, numFields)
	itemBuf := make([]event.Item, 0, 8)
	gramBuf := make([]gram.Gram, 0, 8)

	fileOffs := tocSize
	pending, pendingErr := r.ReadRecord()

	for actorID := uint64(0); actorID < numCookies; actorID++ {
		if err := seekAndWriteU32(out, TOCEntrySize*actorID, fileOffs); err != nil {
			return 0, fmt.Errorf("%w: writing TOC entry %d: %v", errs.ErrIoFailure, actorID, err)
		}

		for i := range prevItems {
			prevItems[i] = 0
		}

		bitOffset := uint64(3) // reserve the 3-bit residual header

		for pendingErr == nil && pending.CookieID == uint32(actorID) { //nolint:gosec
			itemBuf = edge.Encode(items, prevItems, pending, itemBuf[:0])
			gramBuf = gram.ChooseGrams(itemBuf, gramFreqs, unigramFreqs, gramBuf[:0])
			bitOffset = huffman.EncodeGrams(cb, gramBuf, bitBuf, bitOffset, fstats)

			pending, pendingErr = r.ReadRecord()
		}
		if pendingErr != nil && pendingErr != io.EOF {
			return 0, fmt.Errorf("%w: trail pass: %v", errs.ErrIoFailure, pendingErr)
		}

		var residual uint64
		var trailSize uint64
		if bitOffset&7 != 0 {
			residual = 8 - (bitOffset & 7)
			trailSize = bitOffset/8 + 1
		} else {
			trailSize = bitOffset / 8
		}
		bitio.WriteBits(bitBuf, 0, residual, 3)

		if _, err := out.Seek(int64(fileOffs), io.SeekStart); err != nil { //nolint:gosec
			return 0, fmt.Errorf("%w: seeking to file_offs %d: %v", errs.ErrIoFailure, fileOffs, err)
		}
		if _, err := out.Write(bitBuf[:trailSize]); err != nil {
			return 0, fmt.Errorf("%w: writing trail for actor %d: %v", errs.ErrIoFailure, actorID, err)
		}

		for i := uint64(0); i < trailSize; i++ {
			bitBuf[i] = 0
		}

		fileOffs += trailSize
		if fileOffs >= MaxFileOffset {
			return 0, fmt.Errorf("%w: file_offs %d reached the 4GB-1 cap", errs.ErrTrailsTooLarge, fileOffs)
		}
	}

	if err := seekAndWriteU32(out, TOCEntrySize*numCookies, fileOffs); err != nil {
		return 0, fmt.Errorf("%w: writing final TOC entry: %v", errs.ErrIoFailure, err)
	}

	return fileOffs, nil
}

func writeZeros(w io.Writer, n uint64) error {
	const chunk = 64 * 1024
	buf := make([]byte, chunk)
	for n > 0 {
		m := uint64(chunk)
		if m > n {
			m = n
		}
		if _, err := w.Write(buf[:m]); err != nil {
			return err
		}
		n -= m
	}
	return nil
}

func seekAndWriteU32(w io.WriteSeeker, offset, value uint64) error {
	if _, err := w.Seek(int64(offset), io.SeekStart); err != nil { //nolint:gosec
		return err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(value)) //nolint:gosec
	_, err := w.Write(buf[:])
	return err
}
