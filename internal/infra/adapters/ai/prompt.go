package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/adapter"
)

const systemPrompt = `You are a veterinary clinical assistant. You receive the transcript of a
veterinary consultation and extract actionable items from it.

Respond with a single JSON object and nothing else. The object has exactly
these keys:

  "follow_up_tasks": array of {"description", "due_date", "assigned_to", "status", "context"}
  "medication_instructions": array of {"medication", "dosage", "frequency", "duration", "route", "conditions"}
  "client_reminders": array of {"description", "priority", "category"}
  "vet_todos": array of {"description", "due_date", "status", "related_task_id"}
  "soap_notes": array of {"subjective", "objective", "assessment", "plan", "note_type", "template_id", "discharge_summary"}
  "warnings": array of strings

"status" is one of PENDING, COMPLETED, CANCELLED. "priority" is one of
HIGH, MEDIUM, LOW. "route" is one of ORAL, TOPICAL, INTRAVENOUS,
SUBCUTANEOUS, OTHER. "note_type" is one of SOAP, DISCHARGE, SHIFT_SUMMARY.
Use null for optional fields you cannot determine. Only extract what the
transcript supports; do not invent items. Put ambiguities in "warnings".`

func userPrompt(in model.VetInput) string {
	var b strings.Builder
	b.WriteString("Transcript:\n")
	b.WriteString(in.Transcript)
	if in.Notes != "" {
		b.WriteString("\n\nAdditional notes:\n")
		b.WriteString(in.Notes)
	}
	var meta []string
	if in.PatientID != "" {
		meta = append(meta, "patient_id="+in.PatientID)
	}
	if in.ConsultDate != "" {
		meta = append(meta, "consult_date="+in.ConsultDate)
	}
	if in.VeterinarianID != "" {
		meta = append(meta, "veterinarian_id="+in.VeterinarianID)
	}
	if in.ClinicID != "" {
		meta = append(meta, "clinic_id="+in.ClinicID)
	}
	if in.Language != "" {
		meta = append(meta, "language="+in.Language)
	}
	if len(meta) > 0 {
		b.WriteString("\n\nConsultation metadata: ")
		b.WriteString(strings.Join(meta, ", "))
	}
	return b.String()
}

// decodeResult parses the provider reply into both the verbatim payload and
// the typed output. Providers occasionally wrap JSON in markdown fences even
// when asked not to.
func decodeResult(text string) (*adapter.ExtractionResult, error) {
	trimmed := stripFences(text)
	if strings.TrimSpace(trimmed) == "" {
		return nil, domain.ErrExtractionEmpty
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("decode extraction reply: %w", err)
	}
	var out model.VetOutput
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, fmt.Errorf("decode extraction reply: %w", err)
	}
	return &adapter.ExtractionResult{Output: &out, Raw: raw}, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
