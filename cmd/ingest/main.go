// Package main provides the ingestion command.
// Usage: source-search-ingest [-pages N] [-query Q] [-cron SCHEDULE]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"source-search/internal/config"
	"source-search/internal/infra/adapter/persistence/memory"
	pgRepo "source-search/internal/infra/adapter/persistence/postgres"
	"source-search/internal/infra/db"
	"source-search/internal/infra/embedder"
	"source-search/internal/infra/github"
	"source-search/internal/observability/logging"
	"source-search/internal/repository"
	ingestUC "source-search/internal/usecase/ingest"
	"source-search/pkg/pacing"
)

// ingestTimeout bounds one full ingestion batch.
const ingestTimeout = 30 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		// Missing .env is the normal case outside local development.
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	logger := logging.NewLoggerTo(os.Stderr)
	slog.SetDefault(logger)

	ingestCfg, err := config.LoadIngestConfig()
	if err != nil {
		logger.Error("failed to load ingest configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var (
		pages        int
		query        string
		cronSchedule string
	)
	flag.IntVar(&pages, "pages", ingestCfg.Pages, "Number of search pages to ingest per batch")
	flag.StringVar(&query, "query", "", "Search query (default from GITHUB_SEARCH_QUERY)")
	flag.StringVar(&cronSchedule, "cron", ingestCfg.CronSchedule, "Cron schedule for periodic refresh (empty runs one batch and exits)")
	flag.Parse()

	if pages < 1 {
		fmt.Fprintf(os.Stderr, "Error: -pages must be positive, got %d\n", pages)
		os.Exit(1)
	}

	githubCfg, err := config.LoadGitHubConfig()
	if err != nil {
		logger.Error("failed to load source configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if query == "" {
		query = githubCfg.SearchQuery
	}

	repoRepo, cleanup := initStore(logger)
	defer cleanup()

	svc := ingestUC.NewService(
		github.NewClient(githubCfg),
		initEmbedder(logger),
		repoRepo,
		pacing.NewTokenBucket(ingestCfg.PageInterval),
		query,
		githubCfg.PerPage,
	)

	startMetricsServer(logger)

	if cronSchedule == "" {
		if ok := runBatch(logger, svc, pages); !ok {
			os.Exit(1)
		}
		return
	}

	startCronIngest(logger, svc, cronSchedule, pages)
}

// initStore selects the record store adapter from configuration.
// Returns the repository and a cleanup function for shutdown.
func initStore(logger *slog.Logger) (repository.RepoRepository, func()) {
	storeCfg, err := config.LoadStoreConfig()
	if err != nil {
		logger.Error("failed to load store configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if storeCfg.Driver == "memory" {
		logger.Info("using in-memory record store")
		return memory.NewStore(), func() {}
	}

	database, err := db.Open(storeCfg.DSN)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		closeDatabase(logger, database)
		os.Exit(1)
	}

	logger.Info("using postgres record store")
	return pgRepo.NewRepoStore(database), func() { closeDatabase(logger, database) }
}

// initEmbedder creates the embedding provider, falling back to the no-op
// provider when embedding is disabled.
func initEmbedder(logger *slog.Logger) ingestUC.Embedder {
	embedderCfg, err := config.LoadEmbedderConfig()
	if err != nil {
		logger.Error("failed to load embedder configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if !embedderCfg.Enabled {
		logger.Info("embedding disabled, records will be skipped")
		return embedder.NewNoOp()
	}

	return embedder.NewOpenAI(embedderCfg)
}

// startMetricsServer exposes prometheus metrics when METRICS_ADDR is set.
func startMetricsServer(logger *slog.Logger) {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()
	logger.Info("metrics server started", slog.String("addr", addr))
}

// runBatch executes a single ingestion batch and reports the outcome.
func runBatch(logger *slog.Logger, svc *ingestUC.Service, pages int) bool {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	report, err := svc.IngestPages(ctx, pages)
	if err != nil {
		logger.Error("ingestion failed",
			slog.Int("pages_completed", report.Pages),
			slog.Int("embedded", report.Embedded),
			slog.Any("error", err))
		return false
	}

	fmt.Printf("Ingested %d pages: %d attempted, %d embedded, %d skipped in %s\n",
		report.Pages, report.Attempted, report.Embedded, report.Skipped,
		report.Duration.Round(time.Millisecond))
	return true
}

// startCronIngest runs the batch on the given cron schedule until killed.
func startCronIngest(logger *slog.Logger, svc *ingestUC.Service, schedule string, pages int) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		logger.Info("scheduled ingestion started", slog.String("schedule", schedule))
		runBatch(logger, svc, pages)
	})
	if err != nil {
		logger.Error("failed to add cron job",
			slog.String("schedule", schedule),
			slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()
	logger.Info("ingestion worker started", slog.String("schedule", schedule))
	select {}
}

func closeDatabase(logger *slog.Logger, database *sql.DB) {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}
