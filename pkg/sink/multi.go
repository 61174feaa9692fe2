package sink

import (
	"context"

	"golang.org/x/sync/errgroup"

	"dglai-harvest/pkg/domain"
)

// Sink persists a sealed batch.
type Sink interface {
	Seal(ctx context.Context, b *domain.Batch) error
}

// SealChecker reports whether a batch was persisted earlier.
type SealChecker interface {
	Sealed(ctx context.Context, key string) (bool, error)
}

// Multi hands each batch to several sinks concurrently.
type Multi []Sink

// Seal returns the first error reported by any sink.
func (m Multi) Seal(ctx context.Context, b *domain.Batch) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range m {
		s := s
		g.Go(func() error {
			return s.Seal(ctx, b)
		})
	}
	return g.Wait()
}

// Sealed reports true only if every sink able to check reports the batch as
// sealed, and at least one of them can check.
func (m Multi) Sealed(ctx context.Context, key string) (bool, error) {
	checked := false
	for _, s := range m {
		checker, ok := s.(SealChecker)
		if !ok {
			continue
		}
		done, err := checker.Sealed(ctx, key)
		if err != nil {
			return false, err
		}
		if !done {
			return false, nil
		}
		checked = true
	}
	return checked, nil
}
