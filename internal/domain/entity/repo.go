// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Repo, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Repo represents one repository record in the corpus.
// Descriptive fields mirror the repository source payload; Embedding is nil
// until an embedding has been computed successfully.
type Repo struct {
	ID          int64
	Name        string
	FullName    string
	URL         string
	Description *string
	Stars       int
	Language    *string
	Topics      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Embedding   []float32
}

// HasEmbedding reports whether the record carries a computed embedding.
// Records without an embedding exist in the store but are excluded from
// similarity scoring.
func (r *Repo) HasEmbedding() bool {
	return len(r.Embedding) > 0
}

// Validate checks the identity fields of the record.
// Descriptive fields (description, language, stars) may be absent; a record
// the source returns with a valid identity is always indexable.
func (r *Repo) Validate() error {
	if r.ID <= 0 {
		return &ValidationError{Field: "id", Message: "id must be positive"}
	}
	if r.FullName == "" {
		return &ValidationError{Field: "full_name", Message: "full_name is required"}
	}
	if r.URL == "" {
		return &ValidationError{Field: "url", Message: "url is required"}
	}
	if r.Stars < 0 {
		return &ValidationError{Field: "stars", Message: "stars must be non-negative"}
	}
	return nil
}
