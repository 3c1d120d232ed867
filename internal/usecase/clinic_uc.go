package usecase

import (
	"context"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/repository"
)

// ClinicUseCase manages clinic records.
type ClinicUseCase struct {
	repo repository.ClinicRepository
}

// NewClinicUseCase constructs a ClinicUseCase.
func NewClinicUseCase(repo repository.ClinicRepository) *ClinicUseCase {
	return &ClinicUseCase{repo: repo}
}

// Save creates or updates a clinic.
func (uc *ClinicUseCase) Save(ctx context.Context, c *model.Clinic) error {
	if c.Name == "" {
		return domain.ErrInvalidArgument
	}
	return uc.repo.Save(ctx, repository.NoTX, c)
}

// Get retrieves a clinic by ID.
func (uc *ClinicUseCase) Get(ctx context.Context, id string) (*model.Clinic, error) {
	return uc.repo.FindByID(ctx, repository.NoTX, id)
}

// List returns all clinics.
func (uc *ClinicUseCase) List(ctx context.Context) ([]*model.Clinic, error) {
	return uc.repo.List(ctx, repository.NoTX)
}

// Delete removes a clinic.
func (uc *ClinicUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, repository.NoTX, id)
}
