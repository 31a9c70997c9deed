// Package metrics instruments each orchestrator stage with a
// Prometheus histogram, replacing the TDB_TIMER_START/END timing
// macros of the original encoder with per-stage duration observations
// (SPEC_FULL.md §3.5). It follows the labeled-HistogramVec shape used
// throughout the retrieved example services, but registers into a
// caller-supplied prometheus.Registerer instead of the global default
// registry, so an embedding application controls where the metrics
// surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stages is the ordered list of orchestrator stage names used as the
// "stage" label value (spec.md §2's C1-C10, except C3, which runs
// inside the unigram, gram and trail passes).
var Stages = []string{
	"timestamp_range", "group", "metadata", "unigram_pass",
	"gram_pass", "codebook", "field_stats", "trail_write", "codebook_write",
}

// Recorder observes per-stage encode duration.
type Recorder struct {
	duration *prometheus.HistogramVec
}

// NewRecorder builds a Recorder and registers it with reg. Pass nil to
// get a Recorder that still works but observes into an unregistered
// (unexported) collector — useful in tests and for callers that don't
// want the encoder's metrics exposed anywhere.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "traildb",
		Subsystem: "encoder",
		Name:      "stage_duration_seconds",
		Help:      "Duration of each trail-encoding stage.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
	}, []string{"stage"})

	if reg != nil {
		reg.MustRegister(hv)
	}

	return &Recorder{duration: hv}
}

// Observe records how long stage took.
func (r *Recorder) Observe(stage string, d time.Duration) {
	r.duration.WithLabelValues(stage).Observe(d.Seconds())
}

// Time returns a func that, when called, observes the elapsed time
// since Time was invoked under stage. Typical use: defer r.Time(stage)().
func (r *Recorder) Time(stage string) func() {
	start := time.Now()
	return func() {
		r.Observe(stage, time.Since(start))
	}
}
