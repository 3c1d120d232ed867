package model

import (
	"strings"

	"medvextract/internal/domain"
)

// VetInput is one transcript submission. It is immutable once accepted:
// the fingerprint and the initial job row are both derived from it.
type VetInput struct {
	Transcript     string `json:"transcript"`
	Notes          string `json:"notes,omitempty"`
	PatientID      string `json:"patient_id,omitempty"`
	ConsultDate    string `json:"consult_date,omitempty"`
	VeterinarianID string `json:"veterinarian_id,omitempty"`
	ClinicID       string `json:"clinic_id,omitempty"`
	TemplateID     string `json:"template_id,omitempty"`
	Language       string `json:"language,omitempty"`
}

func (in VetInput) Validate() error {
	if strings.TrimSpace(in.Transcript) == "" {
		return domain.ErrEmptyTranscript
	}
	return nil
}

// ---- enums carried by extraction output ----

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

func (p Priority) EnumValue() string { return string(p) }

// TaskState is the lifecycle of an extracted follow-up item (not to be
// confused with JobStatus, the persisted transcript job state).
type TaskState string

const (
	TaskStatePending   TaskState = "PENDING"
	TaskStateCompleted TaskState = "COMPLETED"
	TaskStateCancelled TaskState = "CANCELLED"
)

func (s TaskState) EnumValue() string { return string(s) }

type MedicationRoute string

const (
	RouteOral         MedicationRoute = "ORAL"
	RouteTopical      MedicationRoute = "TOPICAL"
	RouteIntravenous  MedicationRoute = "INTRAVENOUS"
	RouteSubcutaneous MedicationRoute = "SUBCUTANEOUS"
	RouteOther        MedicationRoute = "OTHER"
)

func (r MedicationRoute) EnumValue() string { return string(r) }

type NoteType string

const (
	NoteSOAP         NoteType = "SOAP"
	NoteDischarge    NoteType = "DISCHARGE"
	NoteShiftSummary NoteType = "SHIFT_SUMMARY"
)

func (t NoteType) EnumValue() string { return string(t) }

// ---- extraction output ----

type FollowUpTask struct {
	Description string    `json:"description"`
	DueDate     string    `json:"due_date,omitempty"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	Status      TaskState `json:"status"`
	Context     string    `json:"context,omitempty"`
}

type MedicationInstruction struct {
	Medication string          `json:"medication"`
	Dosage     string          `json:"dosage"`
	Frequency  string          `json:"frequency"`
	Duration   string          `json:"duration,omitempty"`
	Route      MedicationRoute `json:"route,omitempty"`
	Conditions string          `json:"conditions,omitempty"`
}

type ClientReminder struct {
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
}

type VetToDo struct {
	Description   string    `json:"description"`
	DueDate       string    `json:"due_date,omitempty"`
	Status        TaskState `json:"status"`
	RelatedTaskID string    `json:"related_task_id,omitempty"`
}

type SOAPNote struct {
	Subjective       string   `json:"subjective"`
	Objective        string   `json:"objective"`
	Assessment       string   `json:"assessment"`
	Plan             string   `json:"plan"`
	NoteType         NoteType `json:"note_type"`
	TemplateID       string   `json:"template_id,omitempty"`
	DischargeSummary string   `json:"discharge_summary,omitempty"`
}

// VetOutput is the structured clinical extraction produced by the provider.
type VetOutput struct {
	FollowUpTasks          []FollowUpTask          `json:"follow_up_tasks"`
	MedicationInstructions []MedicationInstruction `json:"medication_instructions"`
	ClientReminders        []ClientReminder        `json:"client_reminders"`
	VetToDos               []VetToDo               `json:"vet_todos"`
	SOAPNotes              []SOAPNote              `json:"soap_notes"`
	Warnings               []string                `json:"warnings"`
}

// AsMap conversions keep enum fields as enum values so the sanitizer's
// enum rule still sees them.

func (t FollowUpTask) AsMap() map[string]any {
	return map[string]any{
		"description": t.Description,
		"due_date":    orNil(t.DueDate),
		"assigned_to": orNil(t.AssignedTo),
		"status":      t.Status,
		"context":     orNil(t.Context),
	}
}

func (m MedicationInstruction) AsMap() map[string]any {
	out := map[string]any{
		"medication": m.Medication,
		"dosage":     m.Dosage,
		"frequency":  m.Frequency,
		"duration":   orNil(m.Duration),
		"conditions": orNil(m.Conditions),
	}
	if m.Route != "" {
		out["route"] = m.Route
	} else {
		out["route"] = nil
	}
	return out
}

func (r ClientReminder) AsMap() map[string]any {
	return map[string]any{
		"description": r.Description,
		"priority":    r.Priority,
		"category":    r.Category,
	}
}

func (t VetToDo) AsMap() map[string]any {
	return map[string]any{
		"description":     t.Description,
		"due_date":        orNil(t.DueDate),
		"status":          t.Status,
		"related_task_id": orNil(t.RelatedTaskID),
	}
}

func (n SOAPNote) AsMap() map[string]any {
	return map[string]any{
		"subjective":        n.Subjective,
		"objective":         n.Objective,
		"assessment":        n.Assessment,
		"plan":              n.Plan,
		"note_type":         n.NoteType,
		"template_id":       orNil(n.TemplateID),
		"discharge_summary": orNil(n.DischargeSummary),
	}
}

func (o VetOutput) AsMap() map[string]any {
	tasks := make([]any, 0, len(o.FollowUpTasks))
	for _, t := range o.FollowUpTasks {
		tasks = append(tasks, t.AsMap())
	}
	meds := make([]any, 0, len(o.MedicationInstructions))
	for _, m := range o.MedicationInstructions {
		meds = append(meds, m.AsMap())
	}
	reminders := make([]any, 0, len(o.ClientReminders))
	for _, r := range o.ClientReminders {
		reminders = append(reminders, r.AsMap())
	}
	todos := make([]any, 0, len(o.VetToDos))
	for _, t := range o.VetToDos {
		todos = append(todos, t.AsMap())
	}
	notes := make([]any, 0, len(o.SOAPNotes))
	for _, n := range o.SOAPNotes {
		notes = append(notes, n.AsMap())
	}
	warnings := make([]any, 0, len(o.Warnings))
	for _, w := range o.Warnings {
		warnings = append(warnings, w)
	}
	return map[string]any{
		"follow_up_tasks":         tasks,
		"medication_instructions": meds,
		"client_reminders":        reminders,
		"vet_todos":               todos,
		"soap_notes":              notes,
		"warnings":                warnings,
	}
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
