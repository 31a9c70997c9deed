package group

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/charsyam/traildb/compress"
)

// Reader re-reads a spill stream written by Writer. C4, C5, and C8
// share one Reader over the same underlying file, each consuming it
// once, start to finish, with a Rewind between passes and no
// interleaving (spec.md §5).
type Reader struct {
	src   io.ReadSeeker
	buf   *bufio.Reader
	codec compress.Codec
	raw   bool

	chunk  []byte // decompressed pending records (non-raw mode)
	off    int    // byte offset of the next record within chunk
	lenBuf [4]byte
	rec    [RecordSize]byte
}

// DefaultReadBufferSize is spec.md §5's "READ_BUFFER_SIZE... default
// ~8MB x sizeof(record)" read-ahead buffer, rounded to a plain 8MB.
const DefaultReadBufferSize = 8 << 20

// NewReader opens a Reader over src using codec, which must match the
// codec the stream was written with. bufSize sizes the read-ahead
// buffer; pass 0 to get DefaultReadBufferSize.
func NewReader(src io.ReadSeeker, codec compress.Codec, bufSize int) *Reader {
	_, raw := codec.(compress.NoOpCompressor)
	if bufSize <= 0 {
		bufSize = DefaultReadBufferSize
	}

	return &Reader{
		src:   src,
		buf:   bufio.NewReaderSize(src, bufSize),
		codec: codec,
		raw:   raw,
	}
}

// Rewind seeks back to the start of the stream so it can be read again
// from the beginning.
func (gr *Reader) Rewind() error {
	if _, err := gr.src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	gr.buf.Reset(gr.src)
	gr.chunk = nil
	gr.off = 0
	return nil
}

// ErrEOF is returned by ReadRecord when the stream is exhausted.
var ErrEOF = io.EOF

// ReadRecord reads the next record, or io.EOF when the stream ends.
func (gr *Reader) ReadRecord() (Record, error) {
	if gr.raw {
		if _, err := io.ReadFull(gr.buf, gr.rec[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return Record{}, io.EOF
			}
			return Record{}, err
		}
		return UnmarshalRecord(gr.rec[:]), nil
	}

	if gr.off >= len(gr.chunk) {
		if err := gr.readChunk(); err != nil {
			return Record{}, err
		}
	}

	rec := UnmarshalRecord(gr.chunk[gr.off : gr.off+RecordSize])
	gr.off += RecordSize
	return rec, nil
}

func (gr *Reader) readChunk() error {
	if _, err := io.ReadFull(gr.buf, gr.lenBuf[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return io.EOF
		}
		return err
	}

	n := binary.LittleEndian.Uint32(gr.lenBuf[:])
	compressed := make([]byte, n)
	if _, err := io.ReadFull(gr.buf, compressed); err != nil {
		return err
	}

	decompressed, err := gr.codec.Decompress(compressed)
	if err != nil {
		return err
	}

	gr.chunk = decompressed
	gr.off = 0
	return nil
}
