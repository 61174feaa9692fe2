// Package harvest drives the batch-by-batch harvest of session identifiers.
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/labels"
	"dglai-harvest/pkg/markup"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 16

// SessionFetcher retrieves the result fragment of an identifier.
type SessionFetcher interface {
	Fetch(ctx context.Context, sessionID string) (markup.Fragment, error)
}

// EntryParser turns a result fragment into an entry.
type EntryParser interface {
	ParseEntry(f markup.Fragment, sessionID string, sink labels.DiagnosticSink) (*domain.DictionaryEntry, error)
}

// Sink persists sealed batches.
type Sink interface {
	Seal(ctx context.Context, batch *domain.Batch) error
}

// SealChecker is implemented by sinks that can tell whether a batch was
// already persisted by an earlier run.
type SealChecker interface {
	Sealed(ctx context.Context, key string) (bool, error)
}

// Harvester partitions identifiers into batches and processes one batch at a
// time with a bounded pool of workers.
type Harvester struct {
	fetcher  SessionFetcher
	parser   EntryParser
	sink     Sink
	workers  int
	resume   bool
	runID    string
	recorder Recorder
	logger   *slog.Logger
}

// Option configures a Harvester.
type Option func(*Harvester)

// WithWorkers sets the number of concurrent tasks per batch.
func WithWorkers(n int) Option {
	return func(h *Harvester) {
		if n > 0 {
			h.workers = n
		}
	}
}

// WithResume skips batches the sink reports as already sealed.
func WithResume(resume bool) Option {
	return func(h *Harvester) { h.resume = resume }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(h *Harvester) { h.runID = id }
}

// WithRecorder sets the statistics recorder.
func WithRecorder(r Recorder) Option {
	return func(h *Harvester) {
		if r != nil {
			h.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harvester) {
		if l != nil {
			h.logger = l
		}
	}
}

// New returns a harvester.
func New(fetcher SessionFetcher, parser EntryParser, sink Sink, opts ...Option) *Harvester {
	h := &Harvester{
		fetcher:  fetcher,
		parser:   parser,
		sink:     sink,
		workers:  DefaultWorkers,
		recorder: nopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.runID == "" {
		h.runID = uuid.NewString()
	}
	h.logger = h.logger.With("component", "harvest", "run_id", h.runID)
	return h
}

// RunID identifies this harvester's run in persisted records.
func (h *Harvester) RunID() string {
	return h.runID
}

// Run harvests ids in batches of batchSize. Each batch is fully processed and
// handed to the sink before the next one starts. It returns the batches sealed
// by this call. A sink error stops the run; so does ctx being done, in which
// case the in-flight batch is discarded.
func (h *Harvester) Run(ctx context.Context, ids []string, batchSize int) ([]*domain.Batch, error) {
	chunks := Partition(ids, batchSize)
	sealed := make([]*domain.Batch, 0, len(chunks))

	h.logger.Info("starting harvest",
		slog.Int("identifiers", len(ids)),
		slog.Int("batches", len(chunks)),
		slog.Int("workers", h.workers))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return sealed, err
		}

		batch := domain.NewBatch(i, h.runID, chunk)
		skip, err := h.alreadySealed(ctx, batch.Key)
		if err != nil {
			return sealed, err
		}
		if skip {
			h.logger.Info("skipping sealed batch", slog.String("batch", batch.Key))
			h.recorder.BatchSkipped()
			continue
		}

		start := time.Now()
		h.processBatch(ctx, batch)
		if err := ctx.Err(); err != nil {
			h.logger.Warn("discarding interrupted batch", slog.String("batch", batch.Key))
			return sealed, err
		}

		batch.Seal()
		if err := h.sink.Seal(ctx, batch); err != nil {
			return sealed, fmt.Errorf("harvest: seal batch %s: %w", batch.Key, err)
		}
		h.recorder.BatchSealed(len(batch.Identifiers))
		sealed = append(sealed, batch)

		h.logger.Info("batch sealed",
			slog.String("batch", batch.Key),
			slog.Int("entries", len(batch.Entries())),
			slog.Int("unmatched_labels", len(batch.Diagnostics())),
			slog.Int("failures", len(batch.Failures())),
			slog.Duration("elapsed", time.Since(start)))
	}

	return sealed, nil
}

func (h *Harvester) alreadySealed(ctx context.Context, key string) (bool, error) {
	if !h.resume {
		return false, nil
	}
	checker, ok := h.sink.(SealChecker)
	if !ok {
		return false, nil
	}
	done, err := checker.Sealed(ctx, key)
	if err != nil {
		return false, fmt.Errorf("harvest: check batch %s: %w", key, err)
	}
	return done, nil
}
