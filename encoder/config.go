package encoder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/charsyam/traildb/compress"
	"github.com/charsyam/traildb/format"
	"github.com/charsyam/traildb/internal/group"
	"github.com/charsyam/traildb/internal/options"
)

// Config holds the tunables an orchestrator run accepts beyond the
// core encode() inputs of spec.md §6.1, built with functional options
// in the style of mebo's internal/options.
type Config struct {
	// GroupedCodec compresses the intermediate grouped-record spill
	// file. Defaults to compress.NewNoOpCompressor(), which yields the
	// original byte-for-byte grouped record format.
	GroupedCodec compress.Codec

	// CodebookCodec compresses the serialized Huffman codebook before
	// it's written to trails.codebook (SPEC_FULL.md §3.3). Defaults to
	// an S2 codec.
	CodebookCodec compress.Codec

	// ReadBufferSize overrides the grouped-file read-ahead buffer size
	// (spec.md §5's READ_BUFFER_SIZE). 0 selects group.DefaultReadBufferSize.
	ReadBufferSize int

	// Logger receives structured progress and diagnostic entries for
	// each orchestrator stage. Defaults to logrus.StandardLogger().
	Logger *logrus.Logger

	// MetricsRegisterer, if non-nil, receives the per-stage duration
	// histogram (SPEC_FULL.md §3.5). Left nil, stage timings are still
	// computed but not exposed anywhere.
	MetricsRegisterer prometheus.Registerer

	// WriteChecksum, when true, emits a trails.checksum file alongside
	// the standard outputs (SPEC_FULL.md §3.4).
	WriteChecksum bool

	// OnStage, if set, is called with each stage name (metrics.Stages)
	// as it starts, letting a caller drive a progress indicator.
	OnStage func(stage string)
}

// Option configures a Config.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	s2, _ := compress.CreateCodec(format.CompressionS2)
	return &Config{
		GroupedCodec:  compress.NewNoOpCompressor(),
		CodebookCodec: s2,
		Logger:        logrus.StandardLogger(),
		WriteChecksum: true,
	}
}

// WithGroupedCodec sets the codec used to compress the grouped spill file.
func WithGroupedCodec(c compress.Codec) Option {
	return options.NoError(func(cfg *Config) { cfg.GroupedCodec = c })
}

// WithCodebookCodec sets the codec used to compress trails.codebook.
func WithCodebookCodec(c compress.Codec) Option {
	return options.NoError(func(cfg *Config) { cfg.CodebookCodec = c })
}

// WithReadBufferSize overrides the grouped-file read-ahead buffer size.
func WithReadBufferSize(n int) Option {
	return options.NoError(func(cfg *Config) { cfg.ReadBufferSize = n })
}

// WithLogger overrides the default logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return options.NoError(func(cfg *Config) { cfg.Logger = l })
}

// WithMetricsRegisterer registers the encoder's stage-duration
// histogram with reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return options.NoError(func(cfg *Config) { cfg.MetricsRegisterer = reg })
}

// WithChecksum toggles trails.checksum emission.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(cfg *Config) { cfg.WriteChecksum = enabled })
}

// WithStageHook registers fn to be called with each stage name as it begins.
func WithStageHook(fn func(stage string)) Option {
	return options.NoError(func(cfg *Config) { cfg.OnStage = fn })
}

func (c *Config) readBufferSize() int {
	if c.ReadBufferSize > 0 {
		return c.ReadBufferSize
	}
	return group.DefaultReadBufferSize
}
