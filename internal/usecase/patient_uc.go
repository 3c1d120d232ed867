package usecase

import (
	"context"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/repository"
)

// PatientUseCase manages patient records.
type PatientUseCase struct {
	repo repository.PatientRepository
}

// NewPatientUseCase constructs a PatientUseCase.
func NewPatientUseCase(repo repository.PatientRepository) *PatientUseCase {
	return &PatientUseCase{repo: repo}
}

// Save creates or updates a patient.
func (uc *PatientUseCase) Save(ctx context.Context, p *model.Patient) error {
	if p.Name == "" {
		return domain.ErrInvalidArgument
	}
	return uc.repo.Save(ctx, repository.NoTX, p)
}

// Get retrieves a patient by ID.
func (uc *PatientUseCase) Get(ctx context.Context, id string) (*model.Patient, error) {
	return uc.repo.FindByID(ctx, repository.NoTX, id)
}

// List returns all patients.
func (uc *PatientUseCase) List(ctx context.Context) ([]*model.Patient, error) {
	return uc.repo.List(ctx, repository.NoTX)
}

// Delete removes a patient.
func (uc *PatientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, repository.NoTX, id)
}
