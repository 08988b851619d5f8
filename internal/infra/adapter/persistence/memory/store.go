// Package memory implements the repository record store as an in-process map.
// It backs the usecase tests and the memory store driver, and mirrors the
// semantics of the PostgreSQL adapter: idempotent upsert-by-id and filtered
// scans.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"source-search/internal/domain/entity"
	"source-search/internal/repository"
)

// Store is a thread-safe in-memory RepoRepository.
type Store struct {
	mu    sync.RWMutex
	repos map[int64]entity.Repo
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{repos: make(map[int64]entity.Repo)}
}

// Upsert creates or replaces the record keyed by its ID. An incoming
// record without an embedding keeps the stored one, matching the
// PostgreSQL adapter.
func (s *Store) Upsert(ctx context.Context, repo *entity.Repo) error {
	if repo == nil {
		return fmt.Errorf("Upsert: repo is nil")
	}
	if err := repo.Validate(); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := cloneRepo(repo)
	if clone.Embedding == nil {
		if prev, ok := s.repos[repo.ID]; ok && prev.Embedding != nil {
			clone.Embedding = append([]float32(nil), prev.Embedding...)
		}
	}
	s.repos[repo.ID] = clone
	return nil
}

// Scan returns copies of all records matching the filter, ordered by stars
// descending with ID as tie-break, matching the PostgreSQL adapter.
func (s *Store) Scan(ctx context.Context, filter repository.ScanFilter) ([]*entity.Repo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Scan: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*entity.Repo, 0)
	for id := range s.repos {
		repo := s.repos[id]
		if !matches(&repo, filter) {
			continue
		}
		clone := cloneRepo(&repo)
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Stars != matched[j].Stars {
			return matched[i].Stars > matched[j].Stars
		}
		return matched[i].ID < matched[j].ID
	})

	return matched, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.repos)), nil
}

// matches evaluates the scan predicate against one record.
func matches(repo *entity.Repo, filter repository.ScanFilter) bool {
	if filter.RequireEmbedding && !repo.HasEmbedding() {
		return false
	}
	if filter.Language != nil {
		if repo.Language == nil || *repo.Language != *filter.Language {
			return false
		}
	}
	if len(filter.Topics) > 0 && !intersects(repo.Topics, filter.Topics) {
		return false
	}
	return true
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(b))
	for _, t := range b {
		set[t] = struct{}{}
	}
	for _, t := range a {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// cloneRepo deep-copies a record so callers cannot mutate stored state.
func cloneRepo(repo *entity.Repo) entity.Repo {
	clone := *repo
	if repo.Description != nil {
		d := *repo.Description
		clone.Description = &d
	}
	if repo.Language != nil {
		l := *repo.Language
		clone.Language = &l
	}
	if repo.Topics != nil {
		clone.Topics = append([]string(nil), repo.Topics...)
	}
	if repo.Embedding != nil {
		clone.Embedding = append([]float32(nil), repo.Embedding...)
	}
	return clone
}
