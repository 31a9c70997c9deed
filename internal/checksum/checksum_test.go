package checksum

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestWriterTeesIntoDigest(t *testing.T) {
	var dst bytes.Buffer
	w := NewWriter(&dst)

	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	require.Equal(t, "hello world", dst.String())

	want := xxhash.Sum64String("hello world")
	require.Equal(t, uint64FromHex(t, w.Sum()), want)
}

func TestWriterEmptySum(t *testing.T) {
	w := NewWriter(bytes.NewBuffer(nil))
	require.Equal(t, uint64FromHex(t, w.Sum()), xxhash.Sum64String(""))
}

func uint64FromHex(t *testing.T, s string) uint64 {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, 8)
	return binary.BigEndian.Uint64(raw)
}
