package ai

import (
	"errors"
	"strings"
	"testing"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
)

const sampleReply = `{
  "follow_up_tasks": [
    {"description": "Recheck left hind leg in 2 weeks", "due_date": null, "assigned_to": null, "status": "PENDING", "context": null}
  ],
  "medication_instructions": [
    {"medication": "Carprofen", "dosage": "75mg", "frequency": "once daily", "duration": "14 days", "route": "ORAL", "conditions": "give with food"}
  ],
  "client_reminders": [],
  "vet_todos": [],
  "soap_notes": [],
  "warnings": []
}`

func TestDecodeResult(t *testing.T) {
	res, err := decodeResult(sampleReply)
	if err != nil {
		t.Fatalf("decodeResult failed: %v", err)
	}
	if len(res.Output.FollowUpTasks) != 1 {
		t.Fatalf("expected 1 follow-up task, got %d", len(res.Output.FollowUpTasks))
	}
	if res.Output.FollowUpTasks[0].Status != model.TaskStatePending {
		t.Fatalf("unexpected task status: %s", res.Output.FollowUpTasks[0].Status)
	}
	if res.Output.MedicationInstructions[0].Route != model.RouteOral {
		t.Fatalf("unexpected route: %s", res.Output.MedicationInstructions[0].Route)
	}
	if _, ok := res.Raw["follow_up_tasks"]; !ok {
		t.Fatal("raw payload must carry the verbatim keys")
	}
}

func TestDecodeResultFenced(t *testing.T) {
	fenced := "```json\n" + sampleReply + "\n```"
	res, err := decodeResult(fenced)
	if err != nil {
		t.Fatalf("decodeResult failed on fenced reply: %v", err)
	}
	if len(res.Output.MedicationInstructions) != 1 {
		t.Fatal("fenced reply lost content")
	}
}

func TestDecodeResultEmpty(t *testing.T) {
	for _, reply := range []string{"", "   ", "```\n```"} {
		_, err := decodeResult(reply)
		if !errors.Is(err, domain.ErrExtractionEmpty) {
			t.Fatalf("reply %q: expected ErrExtractionEmpty, got %v", reply, err)
		}
	}
}

func TestDecodeResultMalformed(t *testing.T) {
	_, err := decodeResult("not json at all")
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUserPromptCarriesMetadata(t *testing.T) {
	p := userPrompt(model.VetInput{
		Transcript:  "Bella was seen for vaccination.",
		Notes:       "annual visit",
		PatientID:   "p-9",
		ConsultDate: "2024-05-01",
	})
	for _, want := range []string{"Bella was seen", "annual visit", "patient_id=p-9", "consult_date=2024-05-01"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}
