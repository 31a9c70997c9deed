package huffman

import (
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/bitio"
	"github.com/charsyam/traildb/internal/gram"
)

// EncodeGrams is the huff_encode_grams collaborator (spec.md §4.4,
// §6.4): it Huffman-encodes each of grams into buf starting at
// bitOffset and returns the bit offset immediately past the last
// written code.
//
// A gram absent from the codebook (never observed during C5, which
// can only happen if C8's gram choices diverge from C5's) is encoded
// as the reserved escape code followed by a self-describing literal
// for each of its items: an 8-bit field id (event.FieldBits) and then
// the item's value at fstats.BitWidths[field] bits. This keeps escape
// decodable without needing to know in advance which field a literal
// belongs to, at the cost of a few extra bits over a scheme that
// assumed the field were already known from context.
func EncodeGrams(cb *Codebook, grams []gram.Gram, buf []byte, bitOffset uint64, fstats FieldStats) uint64 {
	for _, g := range grams {
		if code, ok := cb.Codes[g]; ok {
			bitOffset = bitio.WriteBits(buf, bitOffset, uint64(code.Bits), int(code.Length))
			continue
		}

		bitOffset = bitio.WriteBits(buf, bitOffset, uint64(cb.Escape.Bits), int(cb.Escape.Length))
		for _, it := range g.Items() {
			bitOffset = writeLiteral(buf, bitOffset, it, fstats)
		}
	}
	return bitOffset
}

func writeLiteral(buf []byte, bitOffset uint64, it event.Item, fstats FieldStats) uint64 {
	f := it.Field()
	bitOffset = bitio.WriteBits(buf, bitOffset, uint64(f), event.FieldBits)

	width := 1
	if int(f) < len(fstats.BitWidths) {
		width = int(fstats.BitWidths[f])
	}
	return bitio.WriteBits(buf, bitOffset, it.Value(), width)
}
