// Package postgres implements the repository record store on PostgreSQL
// with the pgvector extension.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"source-search/internal/domain/entity"
	"source-search/internal/repository"
)

// DefaultScanTimeout bounds a single corpus scan.
const DefaultScanTimeout = 10 * time.Second

// RepoStore implements the RepoRepository interface for PostgreSQL.
type RepoStore struct {
	db *sql.DB
}

// NewRepoStore creates a new PostgreSQL-based RepoRepository.
func NewRepoStore(db *sql.DB) repository.RepoRepository {
	return &RepoStore{db: db}
}

// Upsert creates a new record or replaces an existing one keyed by ID.
// Uses INSERT ... ON CONFLICT DO UPDATE so re-ingesting the same ID
// overwrites metadata without creating a duplicate. A NULL incoming
// embedding never clears a stored one.
func (s *RepoStore) Upsert(ctx context.Context, repo *entity.Repo) error {
	if repo == nil {
		return fmt.Errorf("Upsert: repo is nil")
	}
	if err := repo.Validate(); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("Upsert: marshal topics: %w", err)
	}

	// A nil interface value maps to SQL NULL for embedding-less records.
	var embedding any
	if repo.HasEmbedding() {
		embedding = pgvector.NewVector(repo.Embedding)
	}

	const query = `
INSERT INTO repos (id, name, full_name, url, description, stars, language, topics, created_at, updated_at, embedding)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id)
DO UPDATE SET
	name = EXCLUDED.name,
	full_name = EXCLUDED.full_name,
	url = EXCLUDED.url,
	description = EXCLUDED.description,
	stars = EXCLUDED.stars,
	language = EXCLUDED.language,
	topics = EXCLUDED.topics,
	created_at = EXCLUDED.created_at,
	updated_at = EXCLUDED.updated_at,
	embedding = COALESCE(EXCLUDED.embedding, repos.embedding)`

	_, err = s.db.ExecContext(ctx, query,
		repo.ID,
		repo.Name,
		repo.FullName,
		repo.URL,
		nullString(repo.Description),
		repo.Stars,
		nullString(repo.Language),
		topicsJSON,
		nullTime(repo.CreatedAt),
		nullTime(repo.UpdatedAt),
		embedding,
	)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}

	return nil
}

// Scan returns all records matching the filter, ordered by stars descending.
// Returns an empty slice if nothing matches.
func (s *RepoStore) Scan(ctx context.Context, filter repository.ScanFilter) ([]*entity.Repo, error) {
	scanCtx, cancel := context.WithTimeout(ctx, DefaultScanTimeout)
	defer cancel()

	query := `
SELECT id, name, full_name, url, description, stars, language, topics, created_at, updated_at, embedding
FROM repos`

	var (
		clauses []string
		args    []any
	)
	if filter.RequireEmbedding {
		clauses = append(clauses, "embedding IS NOT NULL")
	}
	if filter.Language != nil {
		args = append(args, *filter.Language)
		clauses = append(clauses, fmt.Sprintf("language = $%d", len(args)))
	}
	if len(filter.Topics) > 0 {
		args = append(args, textArrayLiteral(filter.Topics))
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(topics) topic WHERE topic = ANY($%d::text[]))",
			len(args)))
	}
	if len(clauses) > 0 {
		query += "\nWHERE " + strings.Join(clauses, " AND ")
	}
	query += "\nORDER BY stars DESC, id"

	rows, err := s.db.QueryContext(scanCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Scan: %w", err)
	}
	defer func() { _ = rows.Close() }()

	repos := make([]*entity.Repo, 0)
	for rows.Next() {
		repo, err := scanRepo(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		repos = append(repos, repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Scan: %w", err)
	}

	return repos, nil
}

// Count returns the total number of stored records.
func (s *RepoStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM repos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// scanRepo maps one result row to an entity, converting SQL NULLs to
// absent optional fields.
func scanRepo(rows *sql.Rows) (*entity.Repo, error) {
	var (
		repo        entity.Repo
		description sql.NullString
		language    sql.NullString
		topicsJSON  []byte
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
		embedding   sql.Null[pgvector.Vector]
	)

	err := rows.Scan(
		&repo.ID,
		&repo.Name,
		&repo.FullName,
		&repo.URL,
		&description,
		&repo.Stars,
		&language,
		&topicsJSON,
		&createdAt,
		&updatedAt,
		&embedding,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		repo.Description = &description.String
	}
	if language.Valid {
		repo.Language = &language.String
	}
	if len(topicsJSON) > 0 {
		if err := json.Unmarshal(topicsJSON, &repo.Topics); err != nil {
			return nil, fmt.Errorf("unmarshal topics: %w", err)
		}
	}
	if createdAt.Valid {
		repo.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		repo.UpdatedAt = updatedAt.Time
	}
	if embedding.Valid {
		repo.Embedding = embedding.V.Slice()
	}

	return &repo, nil
}

// textArrayLiteral builds a PostgreSQL text[] literal for parameter binding.
// Elements are quoted so topics containing commas or quotes stay intact.
func textArrayLiteral(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		quoted[i] = `"` + v + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}"
}

// nullString converts an optional field to its SQL representation.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullTime converts a zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
