package usecase

import (
	"context"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/repository"
)

// VeterinarianUseCase manages veterinarian records.
type VeterinarianUseCase struct {
	repo repository.VeterinarianRepository
}

// NewVeterinarianUseCase constructs a VeterinarianUseCase.
func NewVeterinarianUseCase(repo repository.VeterinarianRepository) *VeterinarianUseCase {
	return &VeterinarianUseCase{repo: repo}
}

// Save creates or updates a veterinarian.
func (uc *VeterinarianUseCase) Save(ctx context.Context, v *model.Veterinarian) error {
	if v.Name == "" {
		return domain.ErrInvalidArgument
	}
	return uc.repo.Save(ctx, repository.NoTX, v)
}

// Get retrieves a veterinarian by ID.
func (uc *VeterinarianUseCase) Get(ctx context.Context, id string) (*model.Veterinarian, error) {
	return uc.repo.FindByID(ctx, repository.NoTX, id)
}

// List returns all veterinarians.
func (uc *VeterinarianUseCase) List(ctx context.Context) ([]*model.Veterinarian, error) {
	return uc.repo.List(ctx, repository.NoTX)
}

// Delete removes a veterinarian.
func (uc *VeterinarianUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, repository.NoTX, id)
}
