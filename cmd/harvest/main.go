package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"dglai-harvest/pkg/config"
	"dglai-harvest/pkg/harvest"
	"dglai-harvest/pkg/httpclient"
	"dglai-harvest/pkg/labels"
	"dglai-harvest/pkg/logging"
	"dglai-harvest/pkg/metrics"
	"dglai-harvest/pkg/parser"
	"dglai-harvest/pkg/session"
)

var (
	configFile string
	start      int
	end        int
	idsFile    string
	retryLog   string
	batchSize  int
)

var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest DGLAi dictionary entries in crash-tolerant batches",
	Long: `Fetches dictionary result pages by session identifier, parses them into
structured entries and writes one set of artifacts per batch.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("batch-size") {
			cfg.Harvest.BatchSize = batchSize
		}

		logger := logging.NewLogger(cfg.Log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML config (environment only when empty)")
	rootCmd.Flags().IntVar(&start, "start", 0, "First session identifier of the range")
	rootCmd.Flags().IntVar(&end, "end", 0, "Session identifier after the last one of the range")
	rootCmd.Flags().StringVar(&idsFile, "ids-file", "", "File with one session identifier per line")
	rootCmd.Flags().StringVar(&retryLog, "retry-failures", "", "Harvest again the identifiers listed in a failed-sessions log")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", harvest.DefaultBatchSize, "Identifiers per batch (overrides config)")
	rootCmd.MarkFlagsMutuallyExclusive("ids-file", "retry-failures")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "harvest:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ids, err := loadIdentifiers(ctx, idSource{start: start, end: end, idsFile: idsFile, retryLog: retryLog})
	if err != nil {
		return err
	}

	sinks, err := openSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sinks.close()

	ids, err = filterIdentifiers(ctx, cfg, sinks, ids)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		logger.Info("nothing to harvest")
		return nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewHarvestMetrics(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, registry, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	client := httpclient.NewClient(httpclient.ClientType(cfg.Harvest.ClientType), httpclient.WithTimeout(cfg.Harvest.Timeout))
	fetcher := session.NewFetcher(client, cfg.Harvest.URLTemplate, logger)
	entryParser := parser.New(labels.NewMapper(nil, nil, logger), logger)

	h := harvest.New(fetcher, entryParser, sinks.sink,
		harvest.WithWorkers(cfg.Harvest.Workers),
		harvest.WithResume(cfg.Harvest.Resume),
		harvest.WithRecorder(recorder),
		harvest.WithLogger(logger))

	began := time.Now()
	batches, err := h.Run(ctx, ids, cfg.Harvest.BatchSize)

	var entries, failures int
	for _, b := range batches {
		entries += len(b.Entries())
		failures += len(b.Failures())
	}
	logger.Info("harvest finished",
		slog.String("run_id", h.RunID()),
		slog.Int("batches", len(batches)),
		slog.Int("entries", entries),
		slog.Int("failures", failures),
		slog.Duration("elapsed", time.Since(began)))

	if errors.Is(err, context.Canceled) {
		logger.Warn("harvest interrupted; rerun to resume from the first unsealed batch")
		return nil
	}
	return err
}

func serveMetrics(addr string, registry *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", addr))
	return srv
}
