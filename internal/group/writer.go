package group

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/charsyam/traildb/compress"
)

// chunkRecords is the number of records batched into one compressed
// frame when a non-NoOp codec is configured (SPEC_FULL.md §3.3).
// 65536 records * RecordSize bytes keeps a chunk under 1.5MB.
const chunkRecords = 65536

// Writer spills grouped records to a temporary file, in the order
// they're handed to WriteRecord. With the default NoOp codec the file
// is a flat, back-to-back array of fixed-size records, byte-identical
// to the original encoder's grouped file; any other codec instead
// writes length-prefixed compressed chunks of chunkRecords records.
type Writer struct {
	w     *bufio.Writer
	codec compress.Codec
	raw   bool // true for the NoOp fast path

	chunk   []byte // pending uncompressed chunk bytes (non-raw mode)
	inChunk int    // records currently buffered in chunk
	scratch [RecordSize]byte
	lenBuf  [4]byte
}

// NewWriter creates a Writer over w using codec to compress spilled
// chunks. Pass compress.NewNoOpCompressor() to get the original raw
// fixed-record format.
func NewWriter(w io.Writer, codec compress.Codec) *Writer {
	_, raw := codec.(compress.NoOpCompressor)

	return &Writer{
		w:     bufio.NewWriterSize(w, 1<<20),
		codec: codec,
		raw:   raw,
		chunk: make([]byte, 0, chunkRecords*RecordSize),
	}
}

// WriteRecord appends one record to the spill stream.
func (gw *Writer) WriteRecord(r Record) error {
	if gw.raw {
		r.MarshalTo(gw.scratch[:])
		_, err := gw.w.Write(gw.scratch[:])
		return err
	}

	off := len(gw.chunk)
	gw.chunk = append(gw.chunk, make([]byte, RecordSize)...)
	r.MarshalTo(gw.chunk[off : off+RecordSize])
	gw.inChunk++

	if gw.inChunk == chunkRecords {
		return gw.flushChunk()
	}
	return nil
}

func (gw *Writer) flushChunk() error {
	if gw.inChunk == 0 {
		return nil
	}

	compressed, err := gw.codec.Compress(gw.chunk)
	if err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(gw.lenBuf[:], uint32(len(compressed))) //nolint:gosec
	if _, err := gw.w.Write(gw.lenBuf[:]); err != nil {
		return err
	}
	if _, err := gw.w.Write(compressed); err != nil {
		return err
	}

	gw.chunk = gw.chunk[:0]
	gw.inChunk = 0
	return nil
}

// Close flushes any buffered chunk and the underlying bufio.Writer.
func (gw *Writer) Close() error {
	if !gw.raw {
		if err := gw.flushChunk(); err != nil {
			return err
		}
	}
	return gw.w.Flush()
}
