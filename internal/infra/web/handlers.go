package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeDomainError maps domain sentinels to HTTP statuses; anything
// unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrEmptyTranscript), errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ---- transcript pipeline ----

func (s *Server) extractTasks(w http.ResponseWriter, r *http.Request) {
	var in model.VetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	taskID, err := s.transcriptUC.Submit(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": taskID})
}

func (s *Server) taskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	st, err := s.transcriptUC.Status(r.Context(), taskID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type transcriptJobResponse struct {
	TaskID       string         `json:"task_id"`
	Transcript   string         `json:"transcript"`
	PatientID    string         `json:"patient_id,omitempty"`
	Status       string         `json:"status"`
	Result       map[string]any `json:"result,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (s *Server) listTranscripts(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.transcriptUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]transcriptJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, transcriptJobResponse{
			TaskID:       j.JobID,
			Transcript:   j.Transcript,
			PatientID:    j.PatientID,
			Status:       string(j.Status),
			Result:       j.Result,
			ErrorMessage: j.ErrorMessage,
			CreatedAt:    j.CreatedAt,
			UpdatedAt:    j.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
