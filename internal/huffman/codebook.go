// Package huffman implements C6 (codebook construction) and C7
// (field-stats table), the collaborators spec.md §4.5 imports from
// the Huffman collaborator: build_codemap, field_stats, and
// huff_encode_grams. The tree construction is grounded on the
// Pattern/PatternHuff/PatternHeap machinery of the pattern-code
// compressor this encoder's Huffman stage is modeled on: a
// bottom-up canonical-Huffman build over a priority queue, with a
// bit-reversed code used as a deterministic tie-breaker so that two
// runs over identical frequencies produce byte-identical codebooks
// (spec.md §8 invariant 8).
package huffman

import (
	"container/heap"
	"fmt"
	"math/bits"
	"sort"

	"github.com/charsyam/traildb/errs"
	"github.com/charsyam/traildb/internal/gram"
)

// MaxCodeLength is the codebook's hard cap on Huffman code length
// (spec.md §4.5: "code_length ≤ 32 bits").
const MaxCodeLength = 32

// Code is one codebook entry: a prefix code and its bit length.
type Code struct {
	Bits   uint32
	Length uint8
}

// Codebook maps grams to prefix codes, plus a reserved Escape code
// meaning "literal follows" for a gram never seen during C5 (spec.md
// §4.5). The decoder would then read a fixed-width literal sized by
// the field-stats table; encoding a stream that omits a gram entirely
// never needs Escape, but it is always present so a codebook is
// forward-compatible with future emissions.
type Codebook struct {
	Codes  map[gram.Gram]Code
	Escape Code
}

// leaf is a Huffman tree leaf: either a gram or the escape symbol.
type leaf struct {
	g        gram.Gram
	escape   bool
	uses     uint64
	code     uint64
	codeBits int
}

type leafList []*leaf

func (ll leafList) Len() int { return len(ll) }

// leafListCmp orders leaves by ascending use count, breaking ties by
// the bit-reversal of a deterministic sequence number assigned before
// sorting — the same trick as patternListCmp, needed here because
// Go's map iteration order is randomized and the codebook must be
// reproducible.
func leafListCmp(a, b *leaf) bool {
	if a.uses == b.uses {
		return bits.Reverse64(a.code) < bits.Reverse64(b.code)
	}
	return a.uses < b.uses
}

// huffNode is an intermediate node of the Huffman tree under
// construction: each side holds either a leaf or another node.
type huffNode struct {
	l0, l1     *leaf
	h0, h1     *huffNode
	uses       uint64
	tieBreaker uint64
}

func (h *huffNode) addZero() {
	if h.l0 != nil {
		h.l0.code <<= 1
		h.l0.codeBits++
	} else {
		h.h0.addZero()
	}
	if h.l1 != nil {
		h.l1.code <<= 1
		h.l1.codeBits++
	} else {
		h.h1.addZero()
	}
}

func (h *huffNode) addOne() {
	if h.l0 != nil {
		h.l0.code = h.l0.code<<1 | 1
		h.l0.codeBits++
	} else {
		h.h0.addOne()
	}
	if h.l1 != nil {
		h.l1.code = h.l1.code<<1 | 1
		h.l1.codeBits++
	} else {
		h.h1.addOne()
	}
}

type nodeHeap []*huffNode

func (nh nodeHeap) Len() int { return len(nh) }
func (nh nodeHeap) Less(i, j int) bool {
	if nh[i].uses == nh[j].uses {
		return nh[i].tieBreaker < nh[j].tieBreaker
	}
	return nh[i].uses < nh[j].uses
}
func (nh nodeHeap) Swap(i, j int)      { nh[i], nh[j] = nh[j], nh[i] }
func (nh *nodeHeap) Push(x interface{}) {
	*nh = append(*nh, x.(*huffNode))
}
func (nh *nodeHeap) Pop() interface{} {
	old := *nh
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*nh = old[:n-1]
	return x
}

// BuildCodemap builds a canonical prefix code over freqs plus a
// reserved escape symbol (C6). It returns errs.ErrCodebookBuildFailure
// if the resulting tree needs more than MaxCodeLength bits for any
// symbol, or if freqs is empty.
func BuildCodemap(freqs gram.GramFreqs) (*Codebook, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: empty gram frequency table", errs.ErrCodebookBuildFailure)
	}

	grams := make([]gram.Gram, 0, len(freqs))
	for g := range freqs {
		grams = append(grams, g)
	}
	sort.Slice(grams, func(i, j int) bool { return gramLess(grams[i], grams[j]) })

	leaves := make(leafList, 0, len(grams)+1)
	for i, g := range grams {
		leaves = append(leaves, &leaf{g: g, uses: freqs[g], code: uint64(i)}) //nolint:gosec
	}
	escapeWeight := uint64(1)
	if len(leaves) > 0 && leaves[0].uses < escapeWeight {
		escapeWeight = leaves[0].uses
	}
	leaves = append(leaves, &leaf{escape: true, uses: escapeWeight, code: uint64(len(leaves))})

	sort.Slice(leaves, func(i, j int) bool { return leafListCmp(leaves[i], leaves[j]) })

	var nh nodeHeap
	heap.Init(&nh)
	tieBreaker := uint64(0)
	i := 0
	for nh.Len()+(leaves.Len()-i) > 1 {
		n := &huffNode{tieBreaker: tieBreaker}

		if nh.Len() > 0 && (i >= leaves.Len() || nh[0].uses < leaves[i].uses) {
			n.h0 = heap.Pop(&nh).(*huffNode)
			n.h0.addZero()
			n.uses += n.h0.uses
		} else {
			n.l0 = leaves[i]
			n.l0.code = 0
			n.l0.codeBits = 1
			n.uses += n.l0.uses
			i++
		}

		if nh.Len() > 0 && (i >= leaves.Len() || nh[0].uses < leaves[i].uses) {
			n.h1 = heap.Pop(&nh).(*huffNode)
			n.h1.addOne()
			n.uses += n.h1.uses
		} else {
			n.l1 = leaves[i]
			n.l1.code = 1
			n.l1.codeBits = 1
			n.uses += n.l1.uses
			i++
		}

		tieBreaker++
		heap.Push(&nh, n)
	}

	if len(leaves) == 1 {
		leaves[0].code = 0
		leaves[0].codeBits = 1
	}

	cb := &Codebook{Codes: make(map[gram.Gram]Code, len(leaves)-1)}
	for _, l := range leaves {
		if l.codeBits > MaxCodeLength {
			return nil, fmt.Errorf("%w: gram code length %d exceeds %d bits", errs.ErrCodebookBuildFailure, l.codeBits, MaxCodeLength)
		}
		c := Code{Bits: uint32(l.code), Length: uint8(l.codeBits)} //nolint:gosec
		if l.escape {
			cb.Escape = c
			continue
		}
		cb.Codes[l.g] = c
	}

	return cb, nil
}

func gramLess(a, b gram.Gram) bool {
	if a.A.Field() != b.A.Field() {
		return a.A.Field() < b.A.Field()
	}
	if a.A.Value() != b.A.Value() {
		return a.A.Value() < b.A.Value()
	}
	if a.Bigram != b.Bigram {
		return !a.Bigram
	}
	if !a.Bigram {
		return false
	}
	if a.B.Field() != b.B.Field() {
		return a.B.Field() < b.B.Field()
	}
	return a.B.Value() < b.B.Value()
}
