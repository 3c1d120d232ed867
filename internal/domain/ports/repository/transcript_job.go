package repository

import (
	"context"

	"medvextract/internal/domain/model"
)

// TranscriptJobRepository is the persisted state machine behind the
// processing pipeline. Each mutation couples the payload write with the
// status transition in one scoped transaction.
type TranscriptJobRepository interface {
	// Create inserts the PENDING row for a freshly accepted submission.
	Create(ctx context.Context, tx Tx, job *model.TranscriptJob) error
	// MarkCompleted transitions PENDING -> COMPLETED and stores both the
	// raw provider payload and the sanitized result.
	MarkCompleted(ctx context.Context, jobID string, raw, sanitized map[string]any) error
	// MarkFailed transitions PENDING -> FAILED with the stringified error.
	MarkFailed(ctx context.Context, jobID string, errMsg string) error
	FindByJobID(ctx context.Context, tx Tx, jobID string) (*model.TranscriptJob, error)
	List(ctx context.Context, tx Tx) ([]*model.TranscriptJob, error)
}
