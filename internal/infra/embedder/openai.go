// Package embedder provides text embedding implementations backed by the
// OpenAI embeddings API, with circuit breaker and retry logic.
package embedder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"source-search/internal/config"
	"source-search/internal/domain/entity"
	"source-search/internal/observability/metrics"
	"source-search/internal/resilience/circuitbreaker"
	"source-search/internal/resilience/retry"
)

// OpenAI implements embedding generation using the OpenAI embeddings API.
// It includes circuit breaker and retry logic for improved reliability.
type OpenAI struct {
	client         *openai.Client
	model          openai.EmbeddingModel
	timeout        time.Duration
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewOpenAI creates a new OpenAI embedder from the given configuration.
// It automatically configures circuit breaker and retry logic.
func NewOpenAI(cfg *config.EmbedderConfig) *OpenAI {
	slog.Info("initialized openai embedder",
		slog.String("model", cfg.Model))

	return &OpenAI{
		client:         openai.NewClient(cfg.APIKey),
		model:          openai.EmbeddingModel(cfg.Model),
		timeout:        cfg.Timeout,
		circuitBreaker: circuitbreaker.New(circuitbreaker.EmbeddingAPIConfig()),
		retryConfig:    retry.EmbeddingAPIConfig(),
	}
}

// Embed generates an embedding vector for the given text.
// Empty or whitespace-only input returns ErrEmbeddingUnavailable without
// calling the API.
func (o *OpenAI) Embed(ctx context.Context, input string) ([]float32, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("empty input: %w", entity.ErrEmbeddingUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result []float32

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doEmbed(ctx, input)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("embedding api circuit breaker open, request rejected",
					slog.String("service", "embedding-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		result = cbResult.([]float32)
		return nil
	})

	if retryErr != nil {
		metrics.RecordEmbeddingRequest(false)
		return nil, fmt.Errorf("embedding failed after retries: %w", retryErr)
	}

	metrics.RecordEmbeddingRequest(true)
	return result, nil
}

// doEmbed performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doEmbed(ctx context.Context, input string) ([]float32, error) {
	start := time.Now()

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: o.model,
		Input: []string{input},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "embedding request failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai embeddings api error: %w", err)
	}

	if len(resp.Data) == 0 {
		slog.ErrorContext(ctx, "embedding api returned empty response",
			slog.Duration("duration", duration))
		return nil, fmt.Errorf("openai embeddings api returned empty response")
	}

	embedding := resp.Data[0].Embedding

	slog.DebugContext(ctx, "embedding generated",
		slog.Int("input_length", len(input)),
		slog.Int("dimensions", len(embedding)),
		slog.Duration("duration", duration))

	return embedding, nil
}
