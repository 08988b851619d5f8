package db

import "database/sql"

// MigrateUp creates the repos table and supporting indexes.
// Note: vector(1536) matches OpenAI text-embedding-3-small. The column is
// nullable: a record whose embedding failed is still stored, flagged
// incomplete by the NULL.
func MigrateUp(db *sql.DB) error {
	// Ignore extension errors (already installed, or no superuser rights).
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`)

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS repos (
    id          BIGINT PRIMARY KEY,
    name        TEXT NOT NULL,
    full_name   TEXT NOT NULL,
    url         TEXT NOT NULL,
    description TEXT,
    stars       INT NOT NULL DEFAULT 0,
    language    TEXT,
    topics      JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at  TIMESTAMPTZ,
    updated_at  TIMESTAMPTZ,
    embedding   vector(1536)
)`); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_repos_language ON repos(language)`,
		`CREATE INDEX IF NOT EXISTS idx_repos_topics ON repos USING gin(topics)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// IVFFlat similarity index; ignored when pgvector is unavailable.
	// lists=100 suits corpora below 1M records.
	_, _ = db.Exec(`
CREATE INDEX IF NOT EXISTS idx_repos_embedding
    ON repos USING ivfflat (embedding vector_cosine_ops)
    WITH (lists = 100)`)

	return nil
}

// MigrateDown rolls back the schema. Use with caution: this deletes all
// stored records.
func MigrateDown(db *sql.DB) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_repos_embedding`,
		`DROP INDEX IF EXISTS idx_repos_topics`,
		`DROP INDEX IF EXISTS idx_repos_language`,
		`DROP TABLE IF EXISTS repos`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
