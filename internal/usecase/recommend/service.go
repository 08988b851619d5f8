// Package recommend implements the similarity query pipeline: resolve a
// repository URL to its metadata, embed its descriptive chunk, and rank the
// stored corpus by cosine similarity.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"source-search/internal/chunk"
	"source-search/internal/domain/entity"
	"source-search/internal/observability/metrics"
	"source-search/internal/observability/tracing"
	"source-search/internal/usecase/ingest"
	"source-search/internal/utils/vector"
)

// scoringParallelism bounds concurrent cosine computations per query.
const scoringParallelism = 8

// TargetFetcher resolves a single repository by owner and name.
type TargetFetcher interface {
	GetRepository(ctx context.Context, owner, name string) (*entity.Repo, error)
}

// Service answers similarity queries against the ingested corpus.
type Service struct {
	Fetcher  TargetFetcher
	Embedder ingest.Embedder
	Selector *Selector
}

// NewService creates a query service.
func NewService(fetcher TargetFetcher, embedder ingest.Embedder, selector *Selector) *Service {
	return &Service{
		Fetcher:  fetcher,
		Embedder: embedder,
		Selector: selector,
	}
}

// Recommend returns up to k stored repositories ranked by similarity to the
// repository behind rawURL. An empty corpus yields an empty result and no
// error; a failed target fetch or embedding is terminal.
func (s *Service) Recommend(ctx context.Context, rawURL string, k int) ([]ScoredRepo, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "recommend.Recommend")
	defer span.End()
	span.SetAttributes(
		attribute.String("query.url", rawURL),
		attribute.Int("query.k", k),
	)

	start := time.Now()

	owner, name, err := ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}

	target, err := s.Fetcher.GetRepository(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("fetch target %s/%s: %v: %w", owner, name, err, entity.ErrSourceUnavailable)
	}

	targetVec, err := s.Embedder.Embed(ctx, chunk.Build(target))
	if err != nil {
		return nil, fmt.Errorf("embed target %s: %v: %w", target.FullName, err, entity.ErrEmbeddingUnavailable)
	}

	candidates, err := s.Selector.Select(ctx, target.Language, target.Topics)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []ScoredRepo{}, nil
	}

	scored, err := s.scoreCandidates(ctx, targetVec, candidates)
	if err != nil {
		return nil, err
	}

	ranked := RankTopK(scored, k)

	duration := time.Since(start)
	metrics.RecordQueryDuration(duration)
	slog.InfoContext(ctx, "query completed",
		slog.String("target", target.FullName),
		slog.Int("candidates", len(candidates)),
		slog.Int("results", len(ranked)),
		slog.Duration("duration", duration))

	return ranked, nil
}

// scoreCandidates computes cosine similarity of every candidate against
// the target vector. Scores land at the candidate's original index so the
// stable rank order is independent of goroutine scheduling. A dimension
// mismatch aborts the whole query.
func (s *Service) scoreCandidates(ctx context.Context, targetVec []float32, candidates []*entity.Repo) ([]ScoredRepo, error) {
	scored := make([]ScoredRepo, len(candidates))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(scoringParallelism)

	for i, candidate := range candidates {
		i, candidate := i, candidate

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			score, err := vector.CosineSimilarity(targetVec, candidate.Embedding)
			if err != nil {
				return fmt.Errorf("score %s: %w", candidate.FullName, err)
			}

			scored[i] = ScoredRepo{Repo: candidate, Score: score}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return scored, nil
}
