package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/CU-DBMI-Peds/phoenix/internal/config"
	"github.com/CU-DBMI-Peds/phoenix/internal/metrics"
	"github.com/CU-DBMI-Peds/phoenix/pkg/respiratory"
)

// DefaultChunkSize is used when Options.ChunkSize is not positive.
const DefaultChunkSize = config.DefaultChunkSize

// Options tunes parallel scoring.
type Options struct {
	// Workers caps concurrently scored chunks. <= 0 means GOMAXPROCS.
	Workers int

	// ChunkSize is the number of entries per chunk. <= 0 means DefaultChunkSize.
	ChunkSize int
}

func (o Options) normalized() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	return o
}

// Engine scores cohorts and keeps running score counts.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	opts      Options
	namespace string

	log   *slog.Logger
	stats *metrics.Recorder
}

// New returns an Engine with the given options. A nil logger uses slog.Default().
func New(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		opts:      opts.normalized(),
		namespace: config.DefaultNamespace,
		log:       logger,
		stats:     metrics.NewRecorder(),
	}
}

// NewFromConfig builds an Engine from the YAML config file at path, logging
// JSON to stderr at the configured level.
func NewFromConfig(path string) (*Engine, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	e := New(optionsFrom(cfg), logger)
	e.namespace = cfg.Metrics.Namespace

	logger.Info("batch: engine configured",
		"path", path,
		"workers", e.opts.Workers,
		"chunk_size", e.opts.ChunkSize,
	)
	return e, nil
}

// Options returns the options currently in effect.
func (e *Engine) Options() Options {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opts
}

// SetOptions replaces the options used by subsequent Score calls.
func (e *Engine) SetOptions(opts Options) {
	opts = opts.normalized()
	e.mu.Lock()
	e.opts = opts
	e.mu.Unlock()
}

// Score returns the respiratory sub-score for every entry of s.
//
// A *respiratory.LengthMismatchError is returned, before any scoring, when
// the series lengths differ. If ctx is cancelled mid-way no scores are
// returned.
func (e *Engine) Score(ctx context.Context, s respiratory.Series) ([]int, error) {
	n, err := s.Validate()
	if err != nil {
		e.stats.Reject()
		e.log.Warn("batch: rejected cohort", "err", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch: score: %w", err)
	}

	opts := e.Options()
	out := make([]int, n)

	chunks := (n + opts.ChunkSize - 1) / opts.ChunkSize
	if chunks <= 1 || opts.Workers == 1 {
		s.ScoreRange(out, 0, n)
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for lo := 0; lo < n; lo += opts.ChunkSize {
			lo, hi := lo, min(lo+opts.ChunkSize, n)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s.ScoreRange(out, lo, hi)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("batch: score: %w", err)
		}
	}

	e.stats.Observe(out)
	e.log.Debug("batch: scored cohort",
		"entries", n,
		"chunks", chunks,
		"workers", opts.Workers,
	)
	return out, nil
}

// Watch reloads options from the config file at path whenever it changes,
// until ctx is cancelled. Invalid files leave the current options in place.
func (e *Engine) Watch(ctx context.Context, path string) error {
	return config.Watch(ctx, path, func(cfg *config.Config) {
		e.SetOptions(optionsFrom(cfg))
		opts := e.Options()
		e.log.Info("batch: options reloaded",
			"workers", opts.Workers,
			"chunk_size", opts.ChunkSize,
		)
	})
}

// WriteMetrics writes the recorded score counts in the Prometheus text format.
func (e *Engine) WriteMetrics(w io.Writer) error {
	return metrics.Write(w, metrics.Families(e.namespace, e.stats.Snapshot()))
}

func optionsFrom(cfg *config.Config) Options {
	return Options{
		Workers:   cfg.Batch.Workers,
		ChunkSize: cfg.Batch.ChunkSize,
	}
}
