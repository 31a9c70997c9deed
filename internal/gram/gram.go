// Package gram implements C4 (unigram frequency pass) and C5 (gram
// selection), the collaborators spec.md §4.4 describes as imported
// from an external gram-builder: choose_grams greedily covers each
// event's edge-encoded items with bigrams and unigrams so as to
// approximately minimize the resulting Huffman-coded length.
package gram

import "github.com/charsyam/traildb/event"

// Gram is a Huffman symbol: either a single item (Bigram == false, B
// zero) or two items from different fields treated as one atomic
// symbol. Unlike the original's packed-u64 gram identifier, Gram is
// a plain comparable struct, which lets it be used directly as a map
// key without a bit-packing scheme (SPEC_FULL.md §1).
type Gram struct {
	A      event.Item
	B      event.Item
	Bigram bool
}

// Unigram builds a single-item gram.
func Unigram(a event.Item) Gram {
	return Gram{A: a}
}

// Pair builds a two-item gram. Callers must ensure a.Field() != b.Field()
// (spec.md §4.4: "bigrams only pair items whose fields differ").
func Pair(a, b event.Item) Gram {
	return Gram{A: a, B: b, Bigram: true}
}

// Items returns the gram's constituent items in emission order.
func (g Gram) Items() []event.Item {
	if g.Bigram {
		return []event.Item{g.A, g.B}
	}
	return []event.Item{g.A}
}
