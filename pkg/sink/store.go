package sink

import (
	"context"
	"fmt"
	"log/slog"

	"dglai-harvest/pkg/domain"
)

// BatchStore is a database that can persist a whole batch.
type BatchStore interface {
	SaveBatch(ctx context.Context, b *domain.Batch) error
	IsBatchSealed(ctx context.Context, key string) (bool, error)
}

// StoreSink adapts a BatchStore to the Sink interface.
type StoreSink struct {
	name   string
	store  BatchStore
	logger *slog.Logger
}

// NewStoreSink wraps store. name is used in errors and logs.
func NewStoreSink(name string, store BatchStore, logger *slog.Logger) *StoreSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreSink{
		name:   name,
		store:  store,
		logger: logger.With("component", "storesink", "store", name),
	}
}

// Seal saves the batch.
func (s *StoreSink) Seal(ctx context.Context, b *domain.Batch) error {
	if !b.Sealed() {
		return fmt.Errorf("sink: batch %s is not sealed", b.Key)
	}
	if err := s.store.SaveBatch(ctx, b); err != nil {
		return fmt.Errorf("sink: %s: save batch %s: %w", s.name, b.Key, err)
	}
	s.logger.Debug("batch stored", slog.String("batch", b.Key), slog.Int("entries", len(b.Entries())))
	return nil
}

// Sealed asks the store whether key was saved.
func (s *StoreSink) Sealed(ctx context.Context, key string) (bool, error) {
	done, err := s.store.IsBatchSealed(ctx, key)
	if err != nil {
		return false, fmt.Errorf("sink: %s: %w", s.name, err)
	}
	return done, nil
}
