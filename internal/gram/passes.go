package gram

import (
	"fmt"
	"io"

	"github.com/charsyam/traildb/errs"
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/edge"
	"github.com/charsyam/traildb/internal/group"
)

// UnigramFreqs maps an edge-encoded item to the number of events it
// was emitted for, across the whole encode (spec.md §4.4's
// unigram_freqs). GramFreqs maps a chosen Gram to the number of times
// choose_grams selected it.
type UnigramFreqs map[event.Item]uint64
type GramFreqs map[Gram]uint64

// CountUnigrams runs C3 over every record in r and tallies the
// resulting items into unigram_freqs (C4). r must be freshly rewound;
// it is left positioned at EOF.
func CountUnigrams(r *group.Reader, items []event.Item, numFields uint32) (UnigramFreqs, error) {
	freqs := make(UnigramFreqs)
	prevItems := make([]event.Item, numFields)
	buf := make([]event.Item, 0, 8)

	curActor := uint32(0)
	first := true

	for {
		rec, err := r.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: unigram pass: %v", errs.ErrIoFailure, err)
		}

		if first || rec.CookieID != curActor {
			for i := range prevItems {
				prevItems[i] = 0
			}
			curActor = rec.CookieID
			first = false
		}

		buf = edge.Encode(items, prevItems, rec, buf[:0])
		for _, it := range buf {
			freqs[it]++
		}
	}

	return freqs, nil
}

// BuildGrams runs C3 again over every record in r, and for each
// event's edge-encoded item set calls ChooseGrams to select a
// covering, accumulating the result into gram_freqs (C5). r must be
// freshly rewound.
func BuildGrams(r *group.Reader, items []event.Item, numFields uint32, unigramFreqs UnigramFreqs) (GramFreqs, error) {
	gramFreqs := make(GramFreqs)
	prevItems := make([]event.Item, numFields)
	itemBuf := make([]event.Item, 0, 8)
	gramBuf := make([]Gram, 0, 8)

	curActor := uint32(0)
	first := true

	for {
		rec, err := r.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: gram pass: %v", errs.ErrIoFailure, err)
		}

		if first || rec.CookieID != curActor {
			for i := range prevItems {
				prevItems[i] = 0
			}
			curActor = rec.CookieID
			first = false
		}

		itemBuf = edge.Encode(items, prevItems, rec, itemBuf[:0])
		gramBuf = ChooseGrams(itemBuf, gramFreqs, unigramFreqs, gramBuf[:0])
		for _, g := range gramBuf {
			gramFreqs[g]++
		}
	}

	return gramFreqs, nil
}

// pairThreshold is the minimum fraction of the two unigrams' combined
// frequency that their bigram must already account for before ChooseGrams
// prefers pairing them over leaving them as two separate unigrams,
// approximating the descending freq(bigram)/(freq(a)+freq(b)) covering
// spec.md §4.4 describes. It is deliberately low: a gram that is chosen
// together even a tenth as often as its items appear individually still
// shortens the expected code length more than two independent unigram
// codes would.
const pairThreshold = 0.1

// preferPair reports whether a and b should be combined into one
// bigram rather than emitted as two unigrams, based on how often they
// have been paired relative to how often each appears at all. It
// returns true when neither item has a count in unigramFreqs (for
// example when unigramFreqs is nil). Otherwise a pair is preferred only
// once gramFreqs already holds it often enough; a pair that gramFreqs
// has never counted is not preferred. In the encoder pipeline,
// CountUnigrams has counted every item before BuildGrams starts with an
// empty gramFreqs, so no pair is ever preferred and every covering
// there is made of unigrams.
func preferPair(a, b event.Item, gramFreqs GramFreqs, unigramFreqs UnigramFreqs) bool {
	denom := unigramFreqs[a] + unigramFreqs[b]
	if denom == 0 {
		return true
	}
	bigramFreq := gramFreqs[Pair(a, b)]
	return float64(bigramFreq)/float64(denom) >= pairThreshold
}

// ChooseGrams selects a covering of edgeItems by grams, appending them
// to out and returning the extended slice. It implements the
// choose_grams collaborator contract of spec.md §4.4:
//
//   - every emitted item is covered by exactly one gram;
//   - the first gram encodes the timestamp delta (edge.Encode always
//     places it at edgeItems[0] when present) and is never paired,
//     matching S1's two separate codes for a two-item event;
//   - bigrams only pair adjacent items whose fields differ, since a
//     bigram spanning the same field could never both change between
//     one event and the next under edge encoding;
//   - among disjoint-field candidates, pairing is preferred only when
//     preferPair's freq(bigram)/(freq(a)+freq(b)) ratio clears
//     pairThreshold (or when unigramFreqs has no count for either
//     item); a pair absent from gramFreqs is left as two unigrams, so
//     with BuildGrams's inputs no bigram is ever chosen.
func ChooseGrams(edgeItems []event.Item, gramFreqs GramFreqs, unigramFreqs UnigramFreqs, out []Gram) []Gram {
	if len(edgeItems) == 0 {
		return out
	}

	out = append(out, Unigram(edgeItems[0]))

	i := 1
	for i < len(edgeItems) {
		if i+1 < len(edgeItems) && edgeItems[i].Field() != edgeItems[i+1].Field() &&
			preferPair(edgeItems[i], edgeItems[i+1], gramFreqs, unigramFreqs) {
			out = append(out, Pair(edgeItems[i], edgeItems[i+1]))
			i += 2
			continue
		}
		out = append(out, Unigram(edgeItems[i]))
		i++
	}

	return out
}
