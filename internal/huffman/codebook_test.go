package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charsyam/traildb/errs"
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/gram"
)

func sampleFreqs() gram.GramFreqs {
	a := gram.Unigram(event.NewItem(0, 1))
	b := gram.Unigram(event.NewItem(1, 2))
	c := gram.Pair(event.NewItem(1, 3), event.NewItem(2, 4))
	d := gram.Unigram(event.NewItem(2, 5))

	return gram.GramFreqs{a: 100, b: 50, c: 10, d: 1}
}

func TestBuildCodemapEmpty(t *testing.T) {
	_, err := BuildCodemap(nil)
	require.ErrorIs(t, err, errs.ErrCodebookBuildFailure)
}

func TestBuildCodemapAssignsEveryGram(t *testing.T) {
	freqs := sampleFreqs()
	cb, err := BuildCodemap(freqs)
	require.NoError(t, err)

	require.Len(t, cb.Codes, len(freqs))
	for g := range freqs {
		code, ok := cb.Codes[g]
		require.True(t, ok)
		require.Positive(t, code.Length)
		require.LessOrEqual(t, int(code.Length), MaxCodeLength)
	}
	require.Positive(t, cb.Escape.Length)
}

func TestBuildCodemapMoreFrequentGramsGetShorterCodes(t *testing.T) {
	freqs := sampleFreqs()
	cb, err := BuildCodemap(freqs)
	require.NoError(t, err)

	mostFrequent := gram.Unigram(event.NewItem(0, 1)) // uses: 100
	leastFrequent := gram.Unigram(event.NewItem(2, 5)) // uses: 1

	require.LessOrEqual(t, cb.Codes[mostFrequent].Length, cb.Codes[leastFrequent].Length)
}

func TestBuildCodemapIsDeterministic(t *testing.T) {
	freqs := sampleFreqs()

	cb1, err := BuildCodemap(freqs)
	require.NoError(t, err)
	cb2, err := BuildCodemap(freqs)
	require.NoError(t, err)

	require.Equal(t, cb1.Codes, cb2.Codes)
	require.Equal(t, cb1.Escape, cb2.Escape)
}

func TestBuildCodemapSingleGram(t *testing.T) {
	g := gram.Unigram(event.NewItem(0, 1))
	freqs := gram.GramFreqs{g: 5}

	cb, err := BuildCodemap(freqs)
	require.NoError(t, err)
	require.Equal(t, uint8(1), cb.Codes[g].Length)
	require.Equal(t, uint8(1), cb.Escape.Length)
}

func TestGivesDistinctPrefixFreeCodes(t *testing.T) {
	freqs := sampleFreqs()
	cb, err := BuildCodemap(freqs)
	require.NoError(t, err)

	type entry struct {
		bits uint32
		n    uint8
	}
	var all []entry
	for _, c := range cb.Codes {
		all = append(all, entry{c.Bits, c.Length})
	}
	all = append(all, entry{cb.Escape.Bits, cb.Escape.Length})

	for i := range all {
		for j := range all {
			if i == j || all[i].n > all[j].n {
				continue
			}
			// all[i] is no longer than all[j]. EncodeGrams writes codes
			// least-significant bit first, so all[i] would be a prefix of
			// all[j] if all[j]'s low all[i].n bits matched it exactly.
			low := all[j].bits & (uint32(1)<<all[i].n - 1)
			require.NotEqual(t, all[i].bits, low,
				"code %d is a prefix of code %d", i, j)
		}
	}
}
