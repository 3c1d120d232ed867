package adapter

import (
	"context"

	"medvextract/internal/domain/model"
)

// ExtractionResult carries both views of one provider response: the
// typed output and the verbatim decoded payload (kept for audit, and
// the input to sanitization).
type ExtractionResult struct {
	Output *model.VetOutput
	Raw    map[string]any
}

// ExtractionService is the port for the remote clinical extraction
// provider. It is treated as untrusted and possibly slow; callers wrap
// every Extract in the resiliency pipeline.
type ExtractionService interface {
	Extract(ctx context.Context, in model.VetInput) (*ExtractionResult, error)
	Provider() string
}
