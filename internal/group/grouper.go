package group

import (
	"fmt"
	"sort"

	"github.com/charsyam/traildb/errs"
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/pool"
)

// GroupBufIncrement is the fixed growth increment for the per-actor
// scratch buffer (spec.md §5's GROUPBUF_INCREMENT), reused across every
// actor without ever shrinking.
const GroupBufIncrement = 10_000_000

// MaxTimestampDeltaBits caps a valid delta at 2^24 (spec.md §4.2): "timestamps
// can be at most 2**24 seconds apart".
const MaxTimestampDeltaBits = 24

// MaxInvalidRatio is the invalid/total record ratio above which the
// encode must abort (spec.md §3, §7 TooManyInvalid).
const MaxInvalidRatio = 0.005

// TimestampRange scans events for the minimum and maximum timestamp
// (C1). An empty events slice returns errs.ErrEmptyInput instead of a
// min/max pair.
func TimestampRange(events []event.Event) (min, max uint32, err error) {
	if len(events) == 0 {
		return 0, 0, errs.ErrEmptyInput
	}

	min = ^uint32(0)
	for _, ev := range events {
		if ev.Timestamp < min {
			min = ev.Timestamp
		}
		if ev.Timestamp > max {
			max = ev.Timestamp
		}
	}
	return min, max, nil
}

// Result carries the outputs of Group beyond the spilled record stream.
type Result struct {
	MaxTimestampDelta uint32
	TotalRecords      uint64
	InvalidRecords    uint64
}

// Group walks each actor's back-linked event chain, sorts it by
// timestamp (stably, so ties keep encounter order), delta-encodes
// timestamps against baseTimestamp, and streams the resulting records
// to w in actor order (C2, spec.md §4.2).
func Group(w *Writer, in *event.Input, baseTimestamp uint32) (Result, error) {
	scratch := pool.NewScratch[Record](GroupBufIncrement)

	var res Result

	for actorID, lastIdx := range in.CookiePointers {
		scratch.Reset()

		ev := in.Events[lastIdx]
		for {
			scratch.Append(Record{
				CookieID: uint32(actorID), //nolint:gosec
				ItemZero: ev.ItemZero,
				NumItems: ev.NumItems,
				// Timestamp temporarily holds the raw (undelta'd) timestamp;
				// it is overwritten with the encoded delta below.
				Timestamp: ev.Timestamp,
			})

			if ev.PrevEventIdx == 0 {
				break
			}
			ev = in.Events[ev.PrevEventIdx-1]
		}

		recs := scratch.Slice()
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Timestamp < recs[j].Timestamp
		})

		prevTimestamp := baseTimestamp
		for i := range recs {
			ts := recs[i].Timestamp
			delta := ts - prevTimestamp

			if delta < (1 << MaxTimestampDeltaBits) {
				if delta > res.MaxTimestampDelta {
					res.MaxTimestampDelta = delta
				}
				recs[i].Timestamp = delta << 8
				prevTimestamp = ts
			} else {
				recs[i].Timestamp = 1
				res.InvalidRecords++
			}
			res.TotalRecords++
		}

		for _, rec := range recs {
			if err := w.WriteRecord(rec); err != nil {
				return res, fmt.Errorf("%w: writing grouped record: %v", errs.ErrIoFailure, err)
			}
		}
	}

	if res.TotalRecords > 0 {
		ratio := float64(res.InvalidRecords) / float64(res.TotalRecords)
		if ratio > MaxInvalidRatio {
			return res, fmt.Errorf("%w: invalid ratio %.4f exceeds %.4f (base timestamp %d)",
				errs.ErrTooManyInvalid, ratio, MaxInvalidRatio, baseTimestamp)
		}
	}

	return res, nil
}
