// Package github provides a client for the GitHub REST API used as the
// repository source. It includes circuit breaker and retry logic with
// reliability patterns shared across external integrations.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"source-search/internal/config"
	"source-search/internal/domain/entity"
	"source-search/internal/resilience/circuitbreaker"
	"source-search/internal/resilience/retry"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// maxErrorBodyBytes limits how much of an error response body is read
// for diagnostics.
const maxErrorBodyBytes = 4096

// Client fetches repository metadata from the GitHub REST API.
// It includes circuit breaker and retry logic for improved reliability.
type Client struct {
	baseURL        string
	token          string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewClient creates a new GitHub API client from the given configuration.
// It automatically configures circuit breaker and retry logic.
func NewClient(cfg *config.GitHubConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:        baseURL,
		token:          cfg.Token,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: circuitbreaker.New(circuitbreaker.GitHubAPIConfig()),
		retryConfig:    retry.GitHubAPIConfig(),
	}
}

// repoPayload mirrors the repository object returned by the GitHub API.
type repoPayload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description *string   `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Language    *string   `json:"language"`
	Topics      []string  `json:"topics"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// searchPayload mirrors the response of the repository search endpoint.
type searchPayload struct {
	TotalCount int           `json:"total_count"`
	Items      []repoPayload `json:"items"`
}

func (p *repoPayload) toEntity() *entity.Repo {
	return &entity.Repo{
		ID:          p.ID,
		Name:        p.Name,
		FullName:    p.FullName,
		URL:         p.HTMLURL,
		Description: p.Description,
		Stars:       p.Stars,
		Language:    p.Language,
		Topics:      p.Topics,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// SearchRepositories fetches one page of repositories matching the query,
// ordered by star count descending. It uses circuit breaker and retry
// logic for improved reliability.
func (c *Client) SearchRepositories(ctx context.Context, query string, page, perPage int) ([]*entity.Repo, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))

	endpoint := c.baseURL + "/search/repositories?" + q.Encode()

	var payload searchPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("search repositories page %d: %w", page, err)
	}

	repos := make([]*entity.Repo, 0, len(payload.Items))
	for i := range payload.Items {
		repos = append(repos, payload.Items[i].toEntity())
	}

	slog.InfoContext(ctx, "fetched repository search page",
		slog.Int("page", page),
		slog.Int("count", len(repos)),
		slog.Int("total_count", payload.TotalCount))

	return repos, nil
}

// GetRepository fetches a single repository by owner and name.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*entity.Repo, error) {
	endpoint := c.baseURL + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name)

	var payload repoPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, name, err)
	}

	return payload.toEntity(), nil
}

// getJSON performs a GET request with retry and circuit breaker protection
// and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	var body []byte

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doGet(ctx, endpoint)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("github api circuit breaker open, request rejected",
					slog.String("service", "github-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		body = cbResult.([]byte)
		return nil
	})

	if retryErr != nil {
		return retryErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}

	return nil
}

// doGet performs the actual HTTP request without retry or circuit breaker.
func (c *Client) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("github api returned %d: %s", resp.StatusCode, string(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read github response: %w", err)
	}

	return body, nil
}
