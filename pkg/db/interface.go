package db

import (
	"context"

	"dglai-harvest/pkg/domain"
)

// Store is a database the harvest can persist batches to.
// Both Client (MongoDB) and PostgresClient implement it.
type Store interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	SaveBatch(ctx context.Context, b *domain.Batch) error
	IsBatchSealed(ctx context.Context, key string) (bool, error)
}

var (
	_ Store = (*Client)(nil)
	_ Store = (*PostgresClient)(nil)
)
