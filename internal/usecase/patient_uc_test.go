package usecase

import (
	"context"
	"errors"
	"testing"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
)

func TestPatientSaveAndGet(t *testing.T) {
	uc := NewPatientUseCase(newMemPatientRepo())

	p := &model.Patient{Name: "Bella", Species: "dog", Breed: "beagle", Age: 4, OwnerName: "Sam"}
	if err := uc.Save(context.Background(), p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected assigned id")
	}

	got, err := uc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Bella" || got.Species != "dog" {
		t.Fatalf("unexpected patient: %+v", got)
	}
}

func TestPatientSaveRequiresName(t *testing.T) {
	uc := NewPatientUseCase(newMemPatientRepo())
	err := uc.Save(context.Background(), &model.Patient{Species: "cat"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPatientDelete(t *testing.T) {
	uc := NewPatientUseCase(newMemPatientRepo())

	p := &model.Patient{Name: "Milo"}
	if err := uc.Save(context.Background(), p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := uc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := uc.Get(context.Background(), p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := uc.Delete(context.Background(), p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
