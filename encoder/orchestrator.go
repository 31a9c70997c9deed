// Package encoder drives C1-C10 in the fixed sequence spec.md §4.9
// requires, managing the temporary grouped file, the three output
// files of spec.md §6.2, and the optional trails.checksum
// (SPEC_FULL.md §3.4).
package encoder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/charsyam/traildb/errs"
	"github.com/charsyam/traildb/event"
	"github.com/charsyam/traildb/internal/checksum"
	"github.com/charsyam/traildb/internal/gram"
	"github.com/charsyam/traildb/internal/group"
	"github.com/charsyam/traildb/internal/huffman"
	"github.com/charsyam/traildb/internal/metrics"
	"github.com/charsyam/traildb/internal/options"
	"github.com/charsyam/traildb/meta"
	"github.com/charsyam/traildb/trail"
)

// Result summarizes one completed encode.
type Result struct {
	Info        meta.Info
	TrailsBytes uint64
}

// Encode runs the full encode() operation of spec.md §6.1 against in,
// writing info, trails.data, trails.codebook (and, unless disabled,
// trails.checksum) under root. It aborts and returns an error on the
// first failure; per spec.md §5, a failed run's temp file is not
// guaranteed to be cleaned up — only the success path unlinks it.
func Encode(in *event.Input, root string, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Result{}, err
	}

	rec := metrics.NewRecorder(cfg.MetricsRegisterer)
	log := cfg.Logger.WithField("root", root)

	stage := func(name string) func() {
		if cfg.OnStage != nil {
			cfg.OnStage(name)
		}
		return rec.Time(name)
	}

	var res Result

	stop := stage("timestamp_range")
	minTS, maxTS, err := group.TimestampRange(in.Events)
	stop()
	if err != nil {
		return res, fmt.Errorf("timestamp range: %w", err)
	}

	tmpPath := filepath.Join(root, fmt.Sprintf("tmp.grouped.%d", os.Getpid()))
	tmpFile, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		return res, fmt.Errorf("%w: opening temp file %s: %v", errs.ErrIoFailure, tmpPath, err)
	}
	gw := group.NewWriter(tmpFile, cfg.GroupedCodec)
	stop = stage("group")
	groupRes, err := group.Group(gw, in, minTS)
	stop()
	if err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("group: %w", err)
	}
	if err := gw.Close(); err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("%w: flushing grouped file: %v", errs.ErrIoFailure, err)
	}

	// The orchestrator's only remaining reference to the caller's
	// event data, beyond this point, is the flat items array consumed
	// by the edge encoder; the event/back-link arrays are never
	// touched again (spec.md §4.9: "release input events").
	numCookies := uint64(in.NumCookies()) //nolint:gosec

	res.Info = meta.Info{
		NumCookies:        numCookies,
		NumEvents:         uint64(len(in.Events)),
		MinTimestamp:      minTS,
		MaxTimestamp:      maxTS,
		MaxTimestampDelta: groupRes.MaxTimestampDelta,
	}

	stop = stage("metadata")
	err = writeFile(filepath.Join(root, "info"), func(w io.Writer) error {
		return meta.Write(w, res.Info)
	})
	stop()
	if err != nil {
		_ = tmpFile.Close()
		return res, err
	}

	if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("%w: rewinding temp file: %v", errs.ErrIoFailure, err)
	}
	r := group.NewReader(tmpFile, cfg.GroupedCodec, cfg.readBufferSize())

	stop = stage("unigram_pass")
	unigramFreqs, err := gram.CountUnigrams(r, in.Items, in.NumFields)
	stop()
	if err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("unigram pass: %w", err)
	}
	if err := r.Rewind(); err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("%w: rewinding for gram pass: %v", errs.ErrIoFailure, err)
	}

	stop = stage("gram_pass")
	gramFreqs, err := gram.BuildGrams(r, in.Items, in.NumFields, unigramFreqs)
	stop()
	if err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("gram pass: %w", err)
	}

	stop = stage("codebook")
	cb, err := huffman.BuildCodemap(gramFreqs)
	stop()
	if err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("codebook: %w", err)
	}

	stop = stage("field_stats")
	fstats := huffman.BuildFieldStats(in.FieldCardinalities, in.NumFields, groupRes.MaxTimestampDelta)
	stop()

	if err := r.Rewind(); err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("%w: rewinding for trail pass: %v", errs.ErrIoFailure, err)
	}

	trailsPath := filepath.Join(root, "trails.data")
	trailsFile, err := os.Create(trailsPath)
	if err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("%w: creating %s: %v", errs.ErrIoFailure, trailsPath, err)
	}

	stop = stage("trail_write")
	fileOffs, err := trail.Write(trailsFile, r, in.Items, numCookies, in.NumFields, cb, gramFreqs, unigramFreqs, fstats)
	stop()
	closeErr := trailsFile.Close()
	if err != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("trail write: %w", err)
	}
	if closeErr != nil {
		_ = tmpFile.Close()
		return res, fmt.Errorf("%w: closing %s: %v", errs.ErrIoFailure, trailsPath, closeErr)
	}
	res.TrailsBytes = fileOffs

	stop = stage("codebook_write")
	codebookPath := filepath.Join(root, "trails.codebook")
	err = writeFile(codebookPath, func(w io.Writer) error {
		compressed, err := cfg.CodebookCodec.Compress(cb.Serialize())
		if err != nil {
			return fmt.Errorf("%w: compressing codebook: %v", errs.ErrCodebookBuildFailure, err)
		}
		_, err = w.Write(compressed)
		return err
	})
	stop()
	if err != nil {
		_ = tmpFile.Close()
		return res, err
	}

	if cfg.WriteChecksum {
		if err := writeChecksums(root); err != nil {
			_ = tmpFile.Close()
			return res, err
		}
	}

	if err := tmpFile.Close(); err != nil {
		return res, fmt.Errorf("%w: closing temp file: %v", errs.ErrIoFailure, err)
	}
	if err := os.Remove(tmpPath); err != nil {
		return res, fmt.Errorf("%w: unlinking temp file: %v", errs.ErrIoFailure, err)
	}

	log.WithFields(logrus.Fields{
		"num_cookies":  numCookies,
		"num_events":   res.Info.NumEvents,
		"trails_bytes": res.TrailsBytes,
	}).Info("encode complete")

	return res, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", errs.ErrIoFailure, path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", errs.ErrIoFailure, path, err)
	}
	return nil
}

func writeChecksums(root string) error {
	sums := make(map[string]string, 3)
	for _, name := range []string{"info", "trails.data", "trails.codebook"} {
		sum, err := hashFile(filepath.Join(root, name))
		if err != nil {
			return err
		}
		sums[name] = sum
	}

	return writeFile(filepath.Join(root, "trails.checksum"), func(w io.Writer) error {
		for _, name := range []string{"info", "trails.data", "trails.codebook"} {
			if _, err := fmt.Fprintf(w, "%s  %s\n", sums[name], name); err != nil {
				return err
			}
		}
		return nil
	})
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s for checksum: %v", errs.ErrIoFailure, path, err)
	}
	defer f.Close()

	cw := checksum.NewWriter(io.Discard)
	if _, err := io.Copy(cw, f); err != nil {
		return "", fmt.Errorf("%w: hashing %s: %v", errs.ErrIoFailure, path, err)
	}
	return cw.Sum(), nil
}
