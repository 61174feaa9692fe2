package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/labels"
)

// outcome is what one task contributes to its batch.
type outcome struct {
	sessionID   string
	entry       *domain.DictionaryEntry
	diagnostics []domain.AbbreviationDiagnostic
	failure     *domain.FetchFailure
}

// failureReporter is implemented by classified fetch errors.
type failureReporter interface {
	Failure() domain.FetchFailure
}

// processBatch runs every identifier of the batch through a fresh worker pool
// and merges the outcomes into the batch once they arrive.
func (h *Harvester) processBatch(ctx context.Context, batch *domain.Batch) {
	ids := batch.Identifiers

	jobChan := make(chan string, len(ids))
	for _, id := range ids {
		jobChan <- id
	}
	close(jobChan)

	workers := min(h.workers, len(ids))
	resultsChan := make(chan outcome, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobChan {
				resultsChan <- h.harvestOne(ctx, id)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var entryCount, failureCount int
	for res := range resultsChan {
		if res.failure != nil {
			failureCount++
			h.recorder.FailureRecorded(res.failure.Kind)
			if err := batch.AddFailure(*res.failure); err != nil {
				h.logger.Error("dropping failure record", slog.String("session_id", res.sessionID), slog.Any("error", err))
			}
			continue
		}

		if len(res.diagnostics) > 0 {
			for _, d := range res.diagnostics {
				h.recorder.LabelUnmatched(d.Vocabulary)
			}
			if err := batch.AddDiagnostics(res.diagnostics...); err != nil {
				h.logger.Error("dropping diagnostics", slog.String("session_id", res.sessionID), slog.Any("error", err))
			}
		}
		if err := batch.AddEntry(res.sessionID, res.entry); err != nil {
			h.logger.Error("dropping entry", slog.String("session_id", res.sessionID), slog.Any("error", err))
			continue
		}
		entryCount++
		h.recorder.EntryHarvested()
		if entryCount%100 == 0 {
			h.logger.Info("progress",
				slog.String("batch", batch.Key),
				slog.Int("entries", entryCount),
				slog.Int("failures", failureCount))
		}
	}
}

// harvestOne fetches and parses a single identifier. It never panics: any
// panic is turned into a failure record for that identifier.
func (h *Harvester) harvestOne(ctx context.Context, sessionID string) (out outcome) {
	out.sessionID = sessionID

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("task panicked", slog.String("session_id", sessionID), slog.Any("panic", r))
			out = outcome{
				sessionID: sessionID,
				failure: &domain.FetchFailure{
					SessionID: sessionID,
					Kind:      domain.FailureTaskPanic,
					Detail:    fmt.Sprint(r),
				},
			}
		}
	}()

	start := time.Now()
	frag, err := h.fetcher.Fetch(ctx, sessionID)
	h.recorder.FetchCompleted(time.Since(start))
	if err != nil {
		out.failure = classify(sessionID, err)
		h.logger.Warn("fetch failed",
			slog.String("session_id", sessionID),
			slog.String("kind", string(out.failure.Kind)),
			slog.String("detail", out.failure.Detail))
		return out
	}

	var diags labels.Diagnostics
	entry, err := h.parser.ParseEntry(frag, sessionID, &diags)
	if err != nil {
		h.logger.Warn("parse failed", slog.String("session_id", sessionID), slog.Any("error", err))
		out.failure = &domain.FetchFailure{
			SessionID: sessionID,
			Kind:      domain.FailureParse,
			Detail:    err.Error(),
		}
		return out
	}

	out.entry = entry
	out.diagnostics = diags
	return out
}

func classify(sessionID string, err error) *domain.FetchFailure {
	var fr failureReporter
	if errors.As(err, &fr) {
		f := fr.Failure()
		return &f
	}
	return &domain.FetchFailure{
		SessionID: sessionID,
		Kind:      domain.FailureHTTP,
		Detail:    err.Error(),
	}
}
