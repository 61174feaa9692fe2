package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dglai-harvest/pkg/config"
	"dglai-harvest/pkg/db"
	"dglai-harvest/pkg/filter"
	"dglai-harvest/pkg/ids"
	"dglai-harvest/pkg/sink"
)

// idSource describes where identifiers come from; exactly one is used.
type idSource struct {
	start, end int
	idsFile    string
	retryLog   string
}

func loadIdentifiers(_ context.Context, src idSource) ([]string, error) {
	sources := 0
	for _, set := range []bool{src.idsFile != "", src.retryLog != "", src.start != 0 || src.end != 0} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New("choose one identifier source: --start/--end, --ids-file or --retry-failures")
	}

	switch {
	case src.idsFile != "":
		return ids.FromFile(src.idsFile)
	case src.retryLog != "":
		return ids.FromFailureLog(src.retryLog)
	case src.end > 0:
		return ids.Range(src.start, src.end)
	default:
		return nil, errors.New("no identifiers: use --start/--end, --ids-file or --retry-failures")
	}
}

// openedSinks holds the composed sink and the stores to close afterwards.
type openedSinks struct {
	sink   sink.Multi
	mongo  *db.Client
	stores []db.Store
}

func (o *openedSinks) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, s := range o.stores {
		_ = s.Close(ctx)
	}
}

func openSinks(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*openedSinks, error) {
	out := &openedSinks{}

	if cfg.Output.Enabled {
		out.sink = append(out.sink, sink.NewFileSink(cfg.Output.Dir, logger))
	}

	if cfg.Mongo.URI != "" {
		client := db.NewClient(cfg.Mongo.URI, cfg.Mongo.Database)
		if err := client.Connect(ctx); err != nil {
			out.close()
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		out.mongo = client
		out.stores = append(out.stores, client)
		out.sink = append(out.sink, sink.NewStoreSink("mongo", client, logger))
	}

	if cfg.Postgres.DSN != "" {
		client := db.NewPostgresClient(db.PostgresConfig{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			ConnMaxLife:  cfg.Postgres.ConnMaxLife,
		})
		if err := client.Connect(ctx); err != nil {
			out.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		out.stores = append(out.stores, client)
		out.sink = append(out.sink, sink.NewStoreSink("postgres", client, logger))
	}

	return out, nil
}

// filterIdentifiers drops malformed identifiers and, when configured, those
// already stored in MongoDB.
func filterIdentifiers(ctx context.Context, cfg *config.Config, sinks *openedSinks, in []string) ([]string, error) {
	filters := []filter.Filter{filter.NewNumericFilter()}
	if cfg.Harvest.SkipExisting && sinks.mongo != nil {
		existing, err := sinks.mongo.GetAllSessionIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("load harvested identifiers: %w", err)
		}
		filters = append(filters, filter.NewAlreadyHarvestedFilter(existing))
	}
	return filter.FilterIdentifiers(ctx, in, filters...)
}
