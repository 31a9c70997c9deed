// Package meta implements C9, the metadata writer: a single ASCII
// summary line describing the encode (spec.md §4.7).
package meta

import (
	"fmt"
	"io"
)

// Info holds the five counters spec.md §4.7 requires in the info file.
type Info struct {
	NumCookies        uint64
	NumEvents         uint64
	MinTimestamp      uint32
	MaxTimestamp      uint32
	MaxTimestampDelta uint32
}

// Write emits Info as a single space-separated decimal line terminated
// by '\n', exactly as spec.md §4.7 and §6.2 specify for the `info` file.
func Write(w io.Writer, info Info) error {
	_, err := fmt.Fprintf(w, "%d %d %d %d %d\n",
		info.NumCookies, info.NumEvents, info.MinTimestamp, info.MaxTimestamp, info.MaxTimestampDelta)
	return err
}
