// Package ingest implements the repository ingestion pipeline: fetch pages
// of repositories from the source, build an embedding for each record, and
// persist everything through the record store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"source-search/internal/chunk"
	"source-search/internal/domain/entity"
	"source-search/internal/observability/metrics"
	"source-search/internal/observability/tracing"
	"source-search/internal/repository"
	"source-search/pkg/pacing"
)

// Source fetches pages of repository metadata from the upstream catalog.
type Source interface {
	SearchRepositories(ctx context.Context, query string, page, perPage int) ([]*entity.Repo, error)
}

// Embedder generates an embedding vector for a text chunk.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service orchestrates paginated ingestion from the source into the store.
type Service struct {
	Source   Source
	Embedder Embedder
	RepoRepo repository.RepoRepository
	Pacing   pacing.Policy

	Query   string
	PerPage int
}

// NewService creates an ingestion service. A nil pacing policy disables
// inter-page delays.
func NewService(
	source Source,
	embedder Embedder,
	repoRepo repository.RepoRepository,
	pacingPolicy pacing.Policy,
	query string,
	perPage int,
) *Service {
	if pacingPolicy == nil {
		pacingPolicy = pacing.None{}
	}

	return &Service{
		Source:   source,
		Embedder: embedder,
		RepoRepo: repoRepo,
		Pacing:   pacingPolicy,
		Query:    query,
		PerPage:  perPage,
	}
}

// Report contains statistics about one ingestion run.
type Report struct {
	Pages     int
	Attempted int
	Embedded  int
	Skipped   int
	Duration  time.Duration
}

// IngestPages fetches up to the given number of pages and persists every
// successfully embedded record. Records whose embedding cannot be generated
// are skipped for this pass so an earlier good vector is never replaced by
// an absence. A source failure stops paging but keeps everything ingested
// so far; the partial report is returned alongside the error.
func (s *Service) IngestPages(ctx context.Context, pages int) (*Report, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "ingest.IngestPages")
	defer span.End()
	span.SetAttributes(
		attribute.Int("ingest.pages", pages),
		attribute.String("ingest.query", s.Query),
	)

	logger := slog.Default()
	start := time.Now()
	report := &Report{}

	for page := 1; page <= pages; page++ {
		// The token bucket starts full, so page 1 proceeds immediately
		// and every later page is spaced by the configured interval.
		if err := s.Pacing.Wait(ctx); err != nil {
			report.Duration = time.Since(start)
			return report, fmt.Errorf("pacing wait before page %d: %w", page, err)
		}

		repos, err := s.Source.SearchRepositories(ctx, s.Query, page, s.PerPage)
		if err != nil {
			metrics.RecordPageFetch(false)
			report.Duration = time.Since(start)
			logger.Error("source page fetch failed, stopping ingestion",
				slog.Int("page", page),
				slog.Any("error", err))
			return report, fmt.Errorf("fetch page %d: %w", page, entity.ErrSourceUnavailable)
		}

		metrics.RecordPageFetch(true)
		report.Pages++

		if len(repos) == 0 {
			logger.Info("source page is empty, stopping ingestion",
				slog.Int("page", page))
			break
		}

		for _, repo := range repos {
			if err := ctx.Err(); err != nil {
				report.Duration = time.Since(start)
				return report, fmt.Errorf("ingestion cancelled: %w", err)
			}

			if err := s.ingestOne(ctx, repo, report); err != nil {
				report.Duration = time.Since(start)
				return report, err
			}
		}

		logger.Info("page ingested",
			slog.Int("page", page),
			slog.Int("records", len(repos)))
	}

	report.Duration = time.Since(start)
	metrics.RecordIngestDuration(report.Duration)

	if total, err := s.RepoRepo.Count(ctx); err == nil {
		metrics.UpdateReposTotal(total)
	}

	logger.Info("ingestion completed",
		slog.Int("pages", report.Pages),
		slog.Int("attempted", report.Attempted),
		slog.Int("embedded", report.Embedded),
		slog.Int("skipped", report.Skipped),
		slog.Duration("duration", report.Duration))

	return report, nil
}

// ingestOne embeds and persists a single record. Embedding failures skip
// the record for this pass; store failures abort the run.
func (s *Service) ingestOne(ctx context.Context, repo *entity.Repo, report *Report) error {
	report.Attempted++

	text := chunk.Build(repo)

	embedding, err := s.Embedder.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("embed %s: %w", repo.FullName, err)
		}

		report.Skipped++
		metrics.RecordRepoIngested(false)
		slog.Warn("embedding failed, skipping record",
			slog.String("full_name", repo.FullName),
			slog.Any("error", err))
		return nil
	}

	repo.Embedding = embedding

	if err := s.RepoRepo.Upsert(ctx, repo); err != nil {
		return fmt.Errorf("upsert %s: %w", repo.FullName, err)
	}

	report.Embedded++
	metrics.RecordRepoIngested(true)
	return nil
}
