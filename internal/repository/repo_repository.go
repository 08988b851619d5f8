// Package repository defines the persistence interfaces consumed by the
// usecase layer. Concrete adapters live under internal/infra/adapter.
package repository

import (
	"context"

	"source-search/internal/domain/entity"
)

// ScanFilter narrows a corpus scan. The zero value matches every record.
type ScanFilter struct {
	// RequireEmbedding restricts the scan to records with a computed embedding.
	RequireEmbedding bool

	// Language, when non-nil, requires an exact match on the record language.
	Language *string

	// Topics, when non-empty, requires the record's topics to intersect this set.
	Topics []string
}

// RepoRepository defines the interface for the repository record store.
type RepoRepository interface {
	// Upsert creates a new record or replaces an existing one keyed by ID.
	// Re-upserting the same ID overwrites all fields and never creates a
	// duplicate. Returns an error if validation or the store operation fails.
	Upsert(ctx context.Context, repo *entity.Repo) error

	// Scan returns all records matching the filter. Returns an empty slice
	// (not nil) when nothing matches.
	Scan(ctx context.Context, filter ScanFilter) ([]*entity.Repo, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)
}
