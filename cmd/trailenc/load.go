package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/charsyam/traildb/event"
)

// jsonInput is the on-disk shape trailenc reads: one actor per entry,
// each holding its events in chronological order. This is a minimal
// stand-in for the loader spec.md §1 treats as an external
// collaborator — real deployments would parse whatever source format
// (log lines, a database export) they have and build an event.Input
// directly.
type jsonInput struct {
	NumFields          uint32           `json:"num_fields"`
	FieldCardinalities []uint64         `json:"field_cardinalities"`
	Actors             []jsonActorTrail `json:"actors"`
}

type jsonActorTrail struct {
	Events []jsonEvent `json:"events"`
}

type jsonEvent struct {
	Timestamp uint32            `json:"timestamp"`
	Items     map[string]uint64 `json:"items"`
}

// loadInput reads path's JSON event dump and builds an event.Input.
// Actors are emitted to the Events array in file order; within an
// actor, events must already be in non-decreasing timestamp order.
func loadInput(path string) (*event.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var ji jsonInput
	if err := json.Unmarshal(raw, &ji); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	in := &event.Input{
		NumFields:          ji.NumFields,
		FieldCardinalities: ji.FieldCardinalities,
		CookiePointers:     make([]uint64, len(ji.Actors)),
	}

	for actorID, actor := range ji.Actors {
		if len(actor.Events) == 0 {
			return nil, fmt.Errorf("actor %d: has no events", actorID)
		}
		prevEventIdx := uint64(0)

		for _, je := range actor.Events {
			itemZero := uint64(len(in.Items))

			fields := make([]int, 0, len(je.Items))
			for k := range je.Items {
				var f int
				if _, err := fmt.Sscanf(k, "%d", &f); err != nil {
					return nil, fmt.Errorf("actor %d: bad field id %q: %w", actorID, k, err)
				}
				fields = append(fields, f)
			}
			sort.Ints(fields)

			for _, f := range fields {
				key := fmt.Sprintf("%d", f)
				in.Items = append(in.Items, event.NewItem(uint8(f), je.Items[key])) //nolint:gosec
			}

			in.Events = append(in.Events, event.Event{
				Timestamp:    je.Timestamp,
				ItemZero:     itemZero,
				NumItems:     uint32(len(fields)), //nolint:gosec
				PrevEventIdx: prevEventIdx,
			})
			prevEventIdx = uint64(len(in.Events))
		}

		in.CookiePointers[actorID] = prevEventIdx - 1
	}

	return in, nil
}
