package gram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charsyam/traildb/event"
)

func TestUnigramAndPairItems(t *testing.T) {
	a := event.NewItem(1, 1)
	b := event.NewItem(2, 2)

	u := Unigram(a)
	require.False(t, u.Bigram)
	require.Equal(t, []event.Item{a}, u.Items())

	p := Pair(a, b)
	require.True(t, p.Bigram)
	require.Equal(t, []event.Item{a, b}, p.Items())
}

func TestGramComparable(t *testing.T) {
	a := event.NewItem(1, 1)
	b := event.NewItem(2, 2)

	freqs := make(map[Gram]int)
	freqs[Unigram(a)]++
	freqs[Pair(a, b)]++
	freqs[Unigram(a)]++

	require.Equal(t, 2, freqs[Unigram(a)])
	require.Equal(t, 1, freqs[Pair(a, b)])
}

func TestChooseGramsCoversAllItems(t *testing.T) {
	items := []event.Item{
		event.NewItem(0, 5), // timestamp, always first and unpaired
		event.NewItem(1, 1),
		event.NewItem(2, 2),
		event.NewItem(1, 3), // left over after the (1,1)+(2,2) pair: a unigram
	}

	grams := ChooseGrams(items, nil, nil, nil)

	require.Equal(t, Unigram(items[0]), grams[0])

	var covered []event.Item
	for _, g := range grams {
		covered = append(covered, g.Items()...)
	}
	require.Equal(t, items, covered)
}

func TestChooseGramsEmpty(t *testing.T) {
	require.Empty(t, ChooseGrams(nil, nil, nil, nil))
}

func TestChooseGramsPairsDisjointFields(t *testing.T) {
	items := []event.Item{
		event.NewItem(0, 1),
		event.NewItem(1, 1),
		event.NewItem(2, 2),
	}

	grams := ChooseGrams(items, nil, nil, nil)
	require.Len(t, grams, 2)
	require.False(t, grams[0].Bigram)
	require.True(t, grams[1].Bigram)
	require.Equal(t, items[1], grams[1].A)
	require.Equal(t, items[2], grams[1].B)
}
