package model

import "time"

type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// TranscriptJob is one row per submitted transcript. A job moves
// PENDING -> COMPLETED or PENDING -> FAILED exactly once; Result/RawResult
// and ErrorMessage are mutually exclusive across the lifecycle.
type TranscriptJob struct {
	ID             int64
	JobID          string
	Transcript     string
	Notes          string
	PatientID      string
	ConsultDate    string
	VeterinarianID string
	ClinicID       string
	TemplateID     string
	Language       string
	Status         JobStatus
	Result         map[string]any // sanitized output, set iff COMPLETED
	RawResult      map[string]any // verbatim provider output, set iff COMPLETED
	ErrorMessage   string         // set iff FAILED
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTranscriptJob builds the initial PENDING row from a submission.
func NewTranscriptJob(jobID string, in VetInput) *TranscriptJob {
	now := time.Now()
	return &TranscriptJob{
		JobID:          jobID,
		Transcript:     in.Transcript,
		Notes:          in.Notes,
		PatientID:      in.PatientID,
		ConsultDate:    in.ConsultDate,
		VeterinarianID: in.VeterinarianID,
		ClinicID:       in.ClinicID,
		TemplateID:     in.TemplateID,
		Language:       in.Language,
		Status:         JobStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (j *TranscriptJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
