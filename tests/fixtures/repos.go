// Package fixtures provides reusable test data generators for the test suites.
package fixtures

import (
	"fmt"
	"time"

	"source-search/internal/domain/entity"
)

// RepoOption is a functional option for customizing test repository records.
type RepoOption func(*entity.Repo)

// NewTestRepo creates a valid embedded Repo with sensible defaults.
// Use functional options to customize the record for specific test cases.
//
// Example:
//
//	repo := NewTestRepo()
//	repo := NewTestRepo(WithID(100), WithLanguage("Rust"), WithoutEmbedding())
func NewTestRepo(opts ...RepoOption) *entity.Repo {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	description := "A test repository"
	language := "Go"

	r := &entity.Repo{
		ID:          1,
		Name:        "example",
		FullName:    "acme/example",
		URL:         "https://github.com/acme/example",
		Description: &description,
		Stars:       100,
		Language:    &language,
		Topics:      []string{"testing", "example"},
		CreatedAt:   now.Add(-24 * time.Hour),
		UpdatedAt:   now,
		Embedding:   GenerateTestVector(8, 0.1),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithID sets the ID and derives a unique name and full name from it,
// so multiple fixtures can coexist in one store.
func WithID(id int64) RepoOption {
	return func(r *entity.Repo) {
		r.ID = id
		if id > 0 {
			r.Name = fmt.Sprintf("example-%d", id)
			r.FullName = fmt.Sprintf("acme/example-%d", id)
			r.URL = fmt.Sprintf("https://github.com/acme/example-%d", id)
		}
	}
}

// WithName sets the Name of the record.
func WithName(name string) RepoOption {
	return func(r *entity.Repo) {
		r.Name = name
	}
}

// WithFullName sets the FullName of the record.
func WithFullName(fullName string) RepoOption {
	return func(r *entity.Repo) {
		r.FullName = fullName
	}
}

// WithStars sets the star count of the record.
func WithStars(stars int) RepoOption {
	return func(r *entity.Repo) {
		r.Stars = stars
	}
}

// WithDescription sets the Description of the record.
func WithDescription(description string) RepoOption {
	return func(r *entity.Repo) {
		r.Description = &description
	}
}

// WithoutDescription clears the Description.
func WithoutDescription() RepoOption {
	return func(r *entity.Repo) {
		r.Description = nil
	}
}

// WithLanguage sets the Language of the record.
func WithLanguage(language string) RepoOption {
	return func(r *entity.Repo) {
		r.Language = &language
	}
}

// WithoutLanguage clears the Language.
func WithoutLanguage() RepoOption {
	return func(r *entity.Repo) {
		r.Language = nil
	}
}

// WithTopics sets the Topics of the record.
func WithTopics(topics ...string) RepoOption {
	return func(r *entity.Repo) {
		r.Topics = topics
	}
}

// WithEmbedding sets the embedding vector of the record.
func WithEmbedding(embedding []float32) RepoOption {
	return func(r *entity.Repo) {
		r.Embedding = embedding
	}
}

// WithoutEmbedding clears the embedding, producing an incomplete record.
func WithoutEmbedding() RepoOption {
	return func(r *entity.Repo) {
		r.Embedding = nil
	}
}
