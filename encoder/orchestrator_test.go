package encoder

import (
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/charsyam/traildb/event"
)

// buildTwoActorInput builds a small event graph: actor 0 has two
// events, actor 1 has one, exercising the delta-encoding, edge-
// encoding, and TOC-writing paths together end to end.
func buildTwoActorInput() *event.Input {
	in := &event.Input{
		NumFields:          2,
		FieldCardinalities: []uint64{0, 4},
		CookiePointers:     make([]uint64, 2),
	}

	e1 := event.Event{Timestamp: 100, ItemZero: 0, NumItems: 1}
	in.Items = append(in.Items, event.NewItem(1, 1))
	in.Events = append(in.Events, e1)

	e2 := event.Event{Timestamp: 110, ItemZero: 1, NumItems: 1, PrevEventIdx: 1}
	in.Items = append(in.Items, event.NewItem(1, 2))
	in.Events = append(in.Events, e2)
	in.CookiePointers[0] = 1

	e3 := event.Event{Timestamp: 105, ItemZero: 2, NumItems: 1}
	in.Items = append(in.Items, event.NewItem(1, 3))
	in.Events = append(in.Events, e3)
	in.CookiePointers[1] = 2

	return in
}

func TestEncodeWritesExpectedOutputs(t *testing.T) {
	root := t.TempDir()
	in := buildTwoActorInput()

	res, err := Encode(in, root)
	require.NoError(t, err)

	require.Equal(t, uint64(2), res.Info.NumCookies)
	require.Equal(t, uint64(3), res.Info.NumEvents)
	require.Positive(t, res.TrailsBytes)

	for _, name := range []string{"info", "trails.data", "trails.codebook", "trails.checksum"} {
		fi, err := os.Stat(root + "/" + name)
		require.NoError(t, err, "expected %s to exist", name)
		require.Positive(t, fi.Size())
	}

	// the temp grouped file must be cleaned up on success
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotContains(t, e.Name(), "tmp.grouped")
	}
}

func TestEncodeSkipsChecksumWhenDisabled(t *testing.T) {
	root := t.TempDir()
	in := buildTwoActorInput()

	_, err := Encode(in, root, WithChecksum(false))
	require.NoError(t, err)

	_, err = os.Stat(root + "/trails.checksum")
	require.True(t, os.IsNotExist(err))
}

func TestEncodeReportsEmptyInput(t *testing.T) {
	root := t.TempDir()
	_, err := Encode(&event.Input{}, root)
	require.Error(t, err)
}

func TestEncodeCallsStageHookForEveryStage(t *testing.T) {
	root := t.TempDir()
	in := buildTwoActorInput()

	var stages []string
	_, err := Encode(in, root, WithStageHook(func(s string) { stages = append(stages, s) }))
	require.NoError(t, err)

	require.Equal(t, []string{
		"timestamp_range", "group", "metadata", "unigram_pass",
		"gram_pass", "codebook", "field_stats", "trail_write", "codebook_write",
	}, stages)
}

func TestEncodeRegistersMetrics(t *testing.T) {
	root := t.TempDir()
	in := buildTwoActorInput()
	reg := prometheus.NewRegistry()

	_, err := Encode(in, root, WithMetricsRegisterer(reg))
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
