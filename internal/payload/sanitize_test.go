package payload

import (
	"reflect"
	"testing"

	"medvextract/internal/domain/model"
)

func TestSanitizeUnwrapsCheckedValue(t *testing.T) {
	in := map[string]any{
		"value":  "ORAL",
		"checks": []any{map[string]any{"name": "valid_route", "status": "succeeded"}},
	}
	got := Sanitize(in)
	if got != "ORAL" {
		t.Fatalf("expected unwrapped primitive %q, got %#v", "ORAL", got)
	}
}

func TestSanitizeKeepsNonPrimitiveValueKey(t *testing.T) {
	in := map[string]any{
		"value":  map[string]any{"nested": 1},
		"checks": []any{},
	}
	got, ok := Sanitize(in).(map[string]any)
	if !ok {
		t.Fatalf("expected mapping to survive, got %#v", Sanitize(in))
	}
	want := map[string]any{
		"value":  map[string]any{"nested": 1},
		"checks": []any{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestSanitizeBoolValueIsNotAWrapper(t *testing.T) {
	in := map[string]any{"value": true, "other": 2}
	got, ok := Sanitize(in).(map[string]any)
	if !ok || got["value"] != true || got["other"] != 2 {
		t.Fatalf("boolean value must not unwrap, got %#v", Sanitize(in))
	}
}

func TestSanitizeEnumUppercases(t *testing.T) {
	type weird string
	in := map[string]any{
		"route":    model.RouteSubcutaneous,
		"priority": model.Priority("high"), // off-convention casing still normalizes
	}
	got := Sanitize(in).(map[string]any)
	if got["route"] != "SUBCUTANEOUS" {
		t.Errorf("route = %#v, want SUBCUTANEOUS", got["route"])
	}
	if got["priority"] != "HIGH" {
		t.Errorf("priority = %#v, want HIGH", got["priority"])
	}
	// unrecognized scalar types fall through untouched
	if out := Sanitize(weird("x")); out != weird("x") {
		t.Errorf("unknown scalar changed: %#v", out)
	}
}

func TestSanitizeConvertsStructuredModels(t *testing.T) {
	out := model.VetOutput{
		FollowUpTasks: []model.FollowUpTask{{
			Description: "Schedule blood panel for Fluffy",
			DueDate:     "2025-07-22",
			AssignedTo:  "Owner",
			Status:      model.TaskStatePending,
			Context:     "Vomiting and dehydration",
		}},
		MedicationInstructions: []model.MedicationInstruction{{
			Medication: "Cerenia",
			Dosage:     "2 mg/kg",
			Frequency:  "Once daily",
			Duration:   "5 days",
			Route:      model.RouteSubcutaneous,
		}},
		ClientReminders: []model.ClientReminder{{
			Description: "Monitor water intake closely",
			Priority:    model.PriorityHigh,
			Category:    "lifestyle",
		}},
		Warnings: []string{"dehydration risk"},
	}

	got, ok := Sanitize(out).(map[string]any)
	if !ok {
		t.Fatalf("expected mapping from model, got %#v", Sanitize(out))
	}

	task := got["follow_up_tasks"].([]any)[0].(map[string]any)
	if task["status"] != "PENDING" {
		t.Errorf("task status = %#v, want PENDING", task["status"])
	}
	med := got["medication_instructions"].([]any)[0].(map[string]any)
	if med["route"] != "SUBCUTANEOUS" {
		t.Errorf("route = %#v, want SUBCUTANEOUS", med["route"])
	}
	if med["conditions"] != nil {
		t.Errorf("empty optional should stay null, got %#v", med["conditions"])
	}
	rem := got["client_reminders"].([]any)[0].(map[string]any)
	if rem["priority"] != "HIGH" {
		t.Errorf("priority = %#v, want HIGH", rem["priority"])
	}
	if got["warnings"].([]any)[0] != "dehydration risk" {
		t.Errorf("warnings mangled: %#v", got["warnings"])
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []any{
		map[string]any{
			"value":  "ORAL",
			"checks": []any{"a"},
		},
		model.VetOutput{
			SOAPNotes: []model.SOAPNote{{
				Subjective: "Owner reports vomiting.",
				Objective:  "Dehydrated, mild fever.",
				Assessment: "Suspected gastroenteritis.",
				Plan:       "Cerenia 2 mg/kg SID for 5 days.",
				NoteType:   model.NoteSOAP,
				TemplateID: "SOAP_ER",
			}},
		},
		map[string]any{
			"list": []any{1, "two", 3.0, nil, map[string]any{"value": 7, "checks": []any{}}},
		},
		"plain string",
		nil,
		42,
	}
	for i, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("case %d: sanitize not idempotent:\n once=%#v\ntwice=%#v", i, once, twice)
		}
	}
}

func TestSanitizeMapKeepsShape(t *testing.T) {
	got := SanitizeMap(map[string]any{"k": model.NoteDischarge})
	if got["k"] != "DISCHARGE" {
		t.Fatalf("got %#v", got)
	}
}
