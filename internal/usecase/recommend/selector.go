package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"source-search/internal/domain/entity"
	"source-search/internal/observability/metrics"
	"source-search/internal/repository"
)

// Selector picks the comparison set for a query from the record store.
type Selector struct {
	RepoRepo        repository.RepoRepository
	FallbackEnabled bool
}

// NewSelector creates a candidate selector.
func NewSelector(repoRepo repository.RepoRepository, fallbackEnabled bool) *Selector {
	return &Selector{RepoRepo: repoRepo, FallbackEnabled: fallbackEnabled}
}

// Select returns all embedded records matching the target's language and
// topics. When the filtered set is empty and fallback is enabled, the
// constraints are dropped and every embedded record is returned instead,
// trading precision for availability.
func (s *Selector) Select(ctx context.Context, language *string, topics []string) ([]*entity.Repo, error) {
	filtered := repository.ScanFilter{
		RequireEmbedding: true,
		Language:         language,
		Topics:           topics,
	}

	candidates, err := s.RepoRepo.Scan(ctx, filtered)
	if err != nil {
		return nil, fmt.Errorf("scan filtered candidates: %w", err)
	}

	if len(candidates) > 0 {
		metrics.RecordCandidateSelection("filtered", len(candidates))
		slog.DebugContext(ctx, "candidate selection",
			slog.String("mode", "filtered"),
			slog.Int("candidates", len(candidates)))
		return candidates, nil
	}

	if !s.FallbackEnabled {
		metrics.RecordCandidateSelection("filtered", 0)
		return candidates, nil
	}

	candidates, err = s.RepoRepo.Scan(ctx, repository.ScanFilter{RequireEmbedding: true})
	if err != nil {
		return nil, fmt.Errorf("scan fallback candidates: %w", err)
	}

	metrics.RecordCandidateSelection("fallback", len(candidates))
	slog.InfoContext(ctx, "candidate selection",
		slog.String("mode", "fallback"),
		slog.Int("candidates", len(candidates)))

	return candidates, nil
}
