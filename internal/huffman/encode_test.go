package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/gram"
)

func TestEncodeGramsKnownGramUsesCodebookCode(t *testing.T) {
	freqs := sampleFreqs()
	cb, err := BuildCodemap(freqs)
	require.NoError(t, err)

	g := gram.Unigram(event.NewItem(0, 1))
	fstats := FieldStats{BitWidths: []uint8{8, 8, 8}}

	buf := make([]byte, 16)
	end := EncodeGrams(cb, []gram.Gram{g}, buf, 0, fstats)
	require.Equal(t, uint64(cb.Codes[g].Length), end)
}

func TestEncodeGramsUnknownGramEscapes(t *testing.T) {
	cb, err := BuildCodemap(sampleFreqs())
	require.NoError(t, err)

	unseen := gram.Unigram(event.NewItem(5, 9))
	fstats := FieldStats{BitWidths: []uint8{8, 8, 8, 8, 8, 8}}

	buf := make([]byte, 16)
	end := EncodeGrams(cb, []gram.Gram{unseen}, buf, 0, fstats)

	// escape code + field id (event.FieldBits) + value width for field 5
	want := uint64(cb.Escape.Length) + event.FieldBits + uint64(fstats.BitWidths[5])
	require.Equal(t, want, end)
}

func TestEncodeGramsAdvancesOffsetAcrossMultipleGrams(t *testing.T) {
	cb, err := BuildCodemap(sampleFreqs())
	require.NoError(t, err)

	fstats := FieldStats{BitWidths: []uint8{8, 8, 8}}
	var grams []gram.Gram
	for g := range cb.Codes {
		grams = append(grams, g)
	}

	buf := make([]byte, 64)
	end := EncodeGrams(cb, grams, buf, 3, fstats)

	var want uint64 = 3
	for _, g := range grams {
		want += uint64(cb.Codes[g].Length)
	}
	require.Equal(t, want, end)
}
