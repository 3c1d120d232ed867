package ai

import (
	"context"
	"time"

	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/adapter"
)

var _ adapter.ExtractionService = (*NoopExtractor)(nil)

// NoopExtractor implements adapter.ExtractionService for local/dev runs.
// It returns an empty but well-formed extraction instead of calling a
// real provider.
type NoopExtractor struct{}

func NewNoopExtractor() *NoopExtractor {
	return &NoopExtractor{}
}

func (e *NoopExtractor) Provider() string { return "noop" }

func (e *NoopExtractor) Extract(ctx context.Context, in model.VetInput) (*adapter.ExtractionResult, error) {
	// Simulate slight processing time and respect ctx.
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	out := &model.VetOutput{
		Warnings: []string{"noop extractor: no provider configured"},
	}
	return &adapter.ExtractionResult{
		Output: out,
		Raw:    out.AsMap(),
	}, nil
}
