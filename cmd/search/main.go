// Package main provides the similarity search command.
// Usage: source-search-query <repo-url> [-k N] [-output json]
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"source-search/internal/config"
	"source-search/internal/infra/adapter/persistence/memory"
	pgRepo "source-search/internal/infra/adapter/persistence/postgres"
	"source-search/internal/infra/db"
	"source-search/internal/infra/embedder"
	"source-search/internal/infra/github"
	"source-search/internal/observability/logging"
	"source-search/internal/repository"
	"source-search/internal/usecase/recommend"
)

// queryTimeout bounds one similarity query end to end.
const queryTimeout = 2 * time.Minute

// ResultOutput is the JSON shape of one ranked repository.
type ResultOutput struct {
	Rank        int     `json:"rank"`
	FullName    string  `json:"full_name"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
	Language    string  `json:"language,omitempty"`
	Stars       int     `json:"stars"`
	URL         string  `json:"url"`
}

// QueryOutput is the JSON shape of a full query response.
type QueryOutput struct {
	Query       string         `json:"query"`
	ResultCount int            `json:"result_count"`
	Results     []ResultOutput `json:"results"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	var (
		k            int
		outputFormat string
	)
	flag.IntVar(&k, "k", recommend.DefaultK, "Number of similar repositories to return")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Repository URL is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: source-search-query <repo-url> [-k N] [-output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  source-search-query https://github.com/golang/go")
		fmt.Fprintln(os.Stderr, "  source-search-query https://github.com/golang/go -k 10 -output json")
		os.Exit(1)
	}
	repoURL := args[0]

	logger := logging.NewLoggerTo(os.Stderr)
	slog.SetDefault(logger)

	if k > recommend.MaxK {
		fmt.Fprintf(os.Stderr, "Warning: k %d exceeds maximum %d, using %d\n", k, recommend.MaxK, recommend.MaxK)
		k = recommend.MaxK
	}

	svc, cleanup := initQueryService(logger)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	results, err := svc.Recommend(ctx, repoURL, k)
	if err != nil {
		logger.Error("query failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		outputJSON(repoURL, results)
	} else {
		outputText(repoURL, results)
	}
}

// initQueryService wires the query pipeline from configuration.
// Returns the service and a cleanup function for shutdown.
func initQueryService(logger *slog.Logger) (*recommend.Service, func()) {
	githubCfg, err := config.LoadGitHubConfig()
	if err != nil {
		logger.Error("failed to load source configuration", slog.Any("error", err))
		os.Exit(1)
	}

	embedderCfg, err := config.LoadEmbedderConfig()
	if err != nil {
		logger.Error("failed to load embedder configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if !embedderCfg.Enabled {
		logger.Error("embedding must be enabled to run similarity queries")
		fmt.Fprintln(os.Stderr, "Error: Set EMBEDDING_ENABLED=true and OPENAI_API_KEY to run queries")
		os.Exit(1)
	}

	repoRepo, cleanup := initStore(logger)

	selectorCfg := config.LoadSelectorConfig()
	selector := recommend.NewSelector(repoRepo, selectorCfg.FallbackEnabled)

	svc := recommend.NewService(
		github.NewClient(githubCfg),
		embedder.NewOpenAI(embedderCfg),
		selector,
	)

	return svc, cleanup
}

// initStore selects the record store adapter from configuration.
func initStore(logger *slog.Logger) (repository.RepoRepository, func()) {
	storeCfg, err := config.LoadStoreConfig()
	if err != nil {
		logger.Error("failed to load store configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if storeCfg.Driver == "memory" {
		logger.Warn("using in-memory record store, corpus will be empty")
		return memory.NewStore(), func() {}
	}

	database, err := db.Open(storeCfg.DSN)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	return pgRepo.NewRepoStore(database), func() {
		if err := closeDatabase(database); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}

func closeDatabase(database *sql.DB) error {
	return database.Close()
}

// outputText prints ranked results in human-readable form.
func outputText(repoURL string, results []recommend.ScoredRepo) {
	fmt.Printf("Repositories similar to %s\n", repoURL)
	fmt.Printf("Results: %d\n\n", len(results))

	if len(results) == 0 {
		fmt.Println("No embedded repositories in the corpus yet. Run the ingest command first.")
		return
	}

	for i, result := range results {
		repo := result.Repo
		fmt.Printf("%d. %s (score %.4f)\n", i+1, repo.FullName, result.Score)
		if repo.Description != nil && *repo.Description != "" {
			fmt.Printf("   Description: %s\n", *repo.Description)
		}
		if repo.Language != nil {
			fmt.Printf("   Language: %s\n", *repo.Language)
		}
		fmt.Printf("   Stars: %d\n", repo.Stars)
		fmt.Printf("   URL: %s\n", repo.URL)
		fmt.Println()
	}
}

// outputJSON prints ranked results as indented JSON.
func outputJSON(repoURL string, results []recommend.ScoredRepo) {
	out := QueryOutput{
		Query:       repoURL,
		ResultCount: len(results),
		Results:     make([]ResultOutput, 0, len(results)),
	}

	for i, result := range results {
		repo := result.Repo
		entry := ResultOutput{
			Rank:     i + 1,
			FullName: repo.FullName,
			Score:    result.Score,
			Stars:    repo.Stars,
			URL:      repo.URL,
		}
		if repo.Description != nil {
			entry.Description = *repo.Description
		}
		if repo.Language != nil {
			entry.Language = *repo.Language
		}
		out.Results = append(out.Results, entry)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}
