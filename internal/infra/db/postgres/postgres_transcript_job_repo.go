package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/repository"
)

var _ repository.TranscriptJobRepository = (*transcriptJobRepo)(nil)

type transcriptJobRepo struct {
	pool *pgxpool.Pool
	tm   repository.TransactionManager
}

func NewTranscriptJobRepo(pool *pgxpool.Pool, tm repository.TransactionManager) *transcriptJobRepo {
	return &transcriptJobRepo{
		pool: pool,
		tm:   tm,
	}
}

const jobColumns = `id, job_id, transcript, notes, patient_id, consult_date,
  veterinarian_id, clinic_id, template_id, language, status,
  result, raw_result, error_message, created_at, updated_at`

func (r *transcriptJobRepo) Create(ctx context.Context, tx repository.Tx, job *model.TranscriptJob) error {
	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	const q = `
INSERT INTO transcript_jobs
  (job_id, transcript, notes, patient_id, consult_date, veterinarian_id,
   clinic_id, template_id, language, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id;`

	row, err := pickRow(ctx, r.pool, tx, q,
		job.JobID, job.Transcript, job.Notes, job.PatientID, job.ConsultDate,
		job.VeterinarianID, job.ClinicID, job.TemplateID, job.Language,
		string(job.Status), job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&job.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// MarkCompleted transitions the job PENDING -> COMPLETED and stores both
// payloads. The status guard in the UPDATE keeps the transition single-shot:
// a row that already reached a terminal state is reported as ErrJobTerminal
// and left untouched.
func (r *transcriptJobRepo) MarkCompleted(ctx context.Context, jobID string, raw, sanitized map[string]any) error {
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	resJSON, err := json.Marshal(sanitized)
	if err != nil {
		return err
	}

	return r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		const q = `
UPDATE transcript_jobs
SET status = 'COMPLETED', raw_result = $2::jsonb, result = $3::jsonb, updated_at = now()
WHERE job_id = $1 AND status = 'PENDING';`

		tag, err := execSQL(ctx, r.pool, tx, q, jobID, rawJSON, resJSON)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.explainMissedTransition(ctx, tx, jobID)
		}
		return nil
	})
}

// MarkFailed transitions the job PENDING -> FAILED with the stringified error.
func (r *transcriptJobRepo) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	return r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		const q = `
UPDATE transcript_jobs
SET status = 'FAILED', error_message = $2, updated_at = now()
WHERE job_id = $1 AND status = 'PENDING';`

		tag, err := execSQL(ctx, r.pool, tx, q, jobID, errMsg)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.explainMissedTransition(ctx, tx, jobID)
		}
		return nil
	})
}

// explainMissedTransition distinguishes "row not found" from "row already
// terminal" after a guarded UPDATE touched nothing.
func (r *transcriptJobRepo) explainMissedTransition(ctx context.Context, tx repository.Tx, jobID string) error {
	row, err := pickRow(ctx, r.pool, tx, `SELECT status FROM transcript_jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return err
	}
	var status string
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return domain.ErrReadDatabaseRow
	}
	return domain.ErrJobTerminal
}

func (r *transcriptJobRepo) FindByJobID(ctx context.Context, tx repository.Tx, jobID string) (*model.TranscriptJob, error) {
	const q = `SELECT ` + jobColumns + ` FROM transcript_jobs WHERE job_id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, jobID)
	if err != nil {
		return nil, err
	}
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *transcriptJobRepo) List(ctx context.Context, tx repository.Tx) ([]*model.TranscriptJob, error) {
	const q = `SELECT ` + jobColumns + ` FROM transcript_jobs ORDER BY created_at DESC;`

	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*model.TranscriptJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*model.TranscriptJob, error) {
	var (
		job       model.TranscriptJob
		statusStr string
		resJSON   []byte
		rawJSON   []byte
	)
	err := row.Scan(
		&job.ID, &job.JobID, &job.Transcript, &job.Notes, &job.PatientID,
		&job.ConsultDate, &job.VeterinarianID, &job.ClinicID, &job.TemplateID,
		&job.Language, &statusStr, &resJSON, &rawJSON, &job.ErrorMessage,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Status = model.JobStatus(statusStr)
	if len(resJSON) > 0 {
		if err := json.Unmarshal(resJSON, &job.Result); err != nil {
			return nil, err
		}
	}
	if len(rawJSON) > 0 {
		if err := json.Unmarshal(rawJSON, &job.RawResult); err != nil {
			return nil, err
		}
	}
	return &job, nil
}
