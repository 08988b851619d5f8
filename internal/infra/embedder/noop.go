package embedder

import (
	"context"
	"fmt"

	"source-search/internal/domain/entity"
)

// NoOp is an embedder that never produces vectors. It is used when
// embedding is disabled so that ingestion can run without an external API;
// every record is then skipped and counted in the report.
type NoOp struct{}

// NewNoOp creates a new NoOp embedder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Embed always reports that no embedding is available.
func (n *NoOp) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, fmt.Errorf("embedding disabled: %w", entity.ErrEmbeddingUnavailable)
}
