package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/repository"
	"medvextract/internal/infra/worker"
)

// Submission status strings exposed to API clients. The persisted row is
// authoritative; the scheduler registry only covers the window before the
// row exists.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// TaskStatus is what a polling client sees for one submitted transcript.
type TaskStatus struct {
	TaskID string         `json:"task_id"`
	Status string         `json:"status"`
	Result map[string]any `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// TranscriptUseCase accepts submissions, hands them to the scheduler, and
// answers status polls.
type TranscriptUseCase struct {
	jobs      repository.TranscriptJobRepository
	scheduler *worker.Scheduler
	processor *worker.TranscriptProcessor
	log       zerolog.Logger
}

func NewTranscriptUseCase(
	jobs repository.TranscriptJobRepository,
	scheduler *worker.Scheduler,
	processor *worker.TranscriptProcessor,
	logger *zerolog.Logger,
) *TranscriptUseCase {
	return &TranscriptUseCase{
		jobs:      jobs,
		scheduler: scheduler,
		processor: processor,
		log:       logger.With().Str("component", "transcript-uc").Logger(),
	}
}

// Submit validates the input and enqueues it for background processing.
// The returned task id can be polled immediately.
func (uc *TranscriptUseCase) Submit(ctx context.Context, in model.VetInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	id, err := uc.scheduler.Submit(func(taskCtx context.Context, taskID string) (map[string]any, error) {
		return uc.processor.Process(taskCtx, taskID, in)
	})
	if err != nil {
		return "", err
	}
	uc.log.Info().Str("job_id", id).Msg("transcript accepted")
	return id, nil
}

// Status answers a poll for a task id. The job table wins when the row
// exists; otherwise the scheduler's in-memory outcome covers jobs that are
// still queued, plus cache hits that never created a row.
func (uc *TranscriptUseCase) Status(ctx context.Context, taskID string) (*TaskStatus, error) {
	job, err := uc.jobs.FindByJobID(ctx, repository.NoTX, taskID)
	if err == nil {
		return statusFromJob(job), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	out, ok := uc.scheduler.Status(taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	st := &TaskStatus{TaskID: taskID}
	switch out.Status {
	case worker.TaskSuccess:
		st.Status = StatusCompleted
		st.Result = out.Value
	case worker.TaskFailure:
		st.Status = StatusFailed
		st.Error = out.Error
	default:
		st.Status = StatusProcessing
	}
	return st, nil
}

// List returns every recorded transcript job, newest first.
func (uc *TranscriptUseCase) List(ctx context.Context) ([]*model.TranscriptJob, error) {
	return uc.jobs.List(ctx, repository.NoTX)
}

func statusFromJob(job *model.TranscriptJob) *TaskStatus {
	st := &TaskStatus{TaskID: job.JobID}
	switch job.Status {
	case model.JobStatusCompleted:
		st.Status = StatusCompleted
		st.Result = job.Result
	case model.JobStatusFailed:
		st.Status = StatusFailed
		st.Error = job.ErrorMessage
	default:
		st.Status = StatusProcessing
	}
	return st
}
