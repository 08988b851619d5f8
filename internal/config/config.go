// Package config holds the typed application configuration, loaded from
// environment variables.
package config

import (
	"fmt"
	"time"

	pkgconfig "source-search/pkg/config"
)

// GitHubConfig holds configuration for the repository source client.
type GitHubConfig struct {
	// BaseURL is the API root. Default: "https://api.github.com"
	BaseURL string

	// Token is the personal access token applied as a bearer header.
	// Optional; unauthenticated requests work with a lower rate limit.
	Token string

	// SearchQuery is the search expression for bulk ingestion.
	// Default: "topic:open-source"
	SearchQuery string

	// PerPage is the page size for search requests. Default: 100, max: 100.
	PerPage int

	// Timeout is the per-request HTTP timeout. Default: 30s
	Timeout time.Duration
}

// Validate checks the GitHub configuration.
func (c *GitHubConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("github base URL cannot be empty")
	}
	if c.SearchQuery == "" {
		return fmt.Errorf("github search query cannot be empty")
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return fmt.Errorf("per_page must be in 1..100, got %d", c.PerPage)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid github timeout: %w", err)
	}
	return nil
}

// LoadGitHubConfig loads the repository source configuration from environment
// variables: GITHUB_API_URL, GITHUB_TOKEN, GITHUB_SEARCH_QUERY,
// GITHUB_PER_PAGE, GITHUB_TIMEOUT.
func LoadGitHubConfig() (*GitHubConfig, error) {
	cfg := &GitHubConfig{
		BaseURL:     pkgconfig.GetEnvString("GITHUB_API_URL", "https://api.github.com"),
		Token:       pkgconfig.GetEnvString("GITHUB_TOKEN", ""),
		SearchQuery: pkgconfig.GetEnvString("GITHUB_SEARCH_QUERY", "topic:open-source"),
		PerPage:     pkgconfig.GetEnvInt("GITHUB_PER_PAGE", 100),
		Timeout:     pkgconfig.GetEnvDuration("GITHUB_TIMEOUT", 30*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid github configuration: %w", err)
	}
	return cfg, nil
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	// APIKey authenticates against the provider. Required when Enabled.
	APIKey string

	// Model is the embedding model identifier.
	// Default: "text-embedding-3-small" (1536 dimensions)
	Model string

	// Timeout is the per-call timeout. Default: 30s
	Timeout time.Duration

	// Enabled controls whether embeddings are generated at all.
	// When false the noop provider is used and every record is skipped.
	Enabled bool
}

// Validate checks the embedder configuration.
func (c *EmbedderConfig) Validate() error {
	if c.Enabled && c.APIKey == "" {
		return fmt.Errorf("embedding API key is required when embeddings are enabled")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding model cannot be empty")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid embedder timeout: %w", err)
	}
	return nil
}

// LoadEmbedderConfig loads the embedding provider configuration from
// environment variables: OPENAI_API_KEY, EMBEDDING_MODEL, EMBEDDING_TIMEOUT,
// EMBEDDING_ENABLED.
func LoadEmbedderConfig() (*EmbedderConfig, error) {
	cfg := &EmbedderConfig{
		APIKey:  pkgconfig.GetEnvString("OPENAI_API_KEY", ""),
		Model:   pkgconfig.GetEnvString("EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout: pkgconfig.GetEnvDuration("EMBEDDING_TIMEOUT", 30*time.Second),
		Enabled: pkgconfig.GetEnvBool("EMBEDDING_ENABLED", true),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedder configuration: %w", err)
	}
	return cfg, nil
}

// StoreConfig holds configuration for the record store.
type StoreConfig struct {
	// Driver selects the store adapter: "postgres" or "memory".
	// Default: "postgres"
	Driver string

	// DSN is the postgres connection string. Required for the postgres driver.
	DSN string
}

// Validate checks the store configuration.
func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store driver %q (expected postgres or memory)", c.Driver)
	}
	return nil
}

// LoadStoreConfig loads the store configuration from environment variables:
// STORE_DRIVER, DATABASE_URL.
func LoadStoreConfig() (*StoreConfig, error) {
	cfg := &StoreConfig{
		Driver: pkgconfig.GetEnvString("STORE_DRIVER", "postgres"),
		DSN:    pkgconfig.GetEnvString("DATABASE_URL", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}
	return cfg, nil
}

// IngestConfig holds configuration for the ingestion pipeline.
type IngestConfig struct {
	// Pages is the default number of search pages per batch. Default: 2
	Pages int

	// PageInterval is the minimum spacing between consecutive page
	// requests, honoring the source's rate limit. Default: 2s
	PageInterval time.Duration

	// CronSchedule optionally enables periodic re-ingestion.
	// Empty disables scheduling.
	CronSchedule string
}

// Validate checks the ingestion configuration.
func (c *IngestConfig) Validate() error {
	if c.Pages <= 0 {
		return fmt.Errorf("pages must be positive, got %d", c.Pages)
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.PageInterval); err != nil {
		return fmt.Errorf("invalid page interval: %w", err)
	}
	return nil
}

// LoadIngestConfig loads the ingestion configuration from environment
// variables: INGEST_PAGES, INGEST_PAGE_INTERVAL, INGEST_CRON_SCHEDULE.
func LoadIngestConfig() (*IngestConfig, error) {
	cfg := &IngestConfig{
		Pages:        pkgconfig.GetEnvInt("INGEST_PAGES", 2),
		PageInterval: pkgconfig.GetEnvDuration("INGEST_PAGE_INTERVAL", 2*time.Second),
		CronSchedule: pkgconfig.GetEnvString("INGEST_CRON_SCHEDULE", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ingest configuration: %w", err)
	}
	return cfg, nil
}

// SelectorConfig holds configuration for candidate selection.
type SelectorConfig struct {
	// FallbackEnabled controls whether an empty filtered result falls back
	// to the full embedded corpus. Trades filter precision for always
	// having a recommendation. Default: true
	FallbackEnabled bool
}

// LoadSelectorConfig loads the selection configuration from the
// SELECTOR_FALLBACK environment variable.
func LoadSelectorConfig() *SelectorConfig {
	return &SelectorConfig{
		FallbackEnabled: pkgconfig.GetEnvBool("SELECTOR_FALLBACK", true),
	}
}
