package repository

import (
	"context"

	"medvextract/internal/domain/model"
)

// Reference tables: clinics, veterinarians, patients. Referenced by
// transcript jobs, owned by the CRUD surface.

type ClinicRepository interface {
	Save(ctx context.Context, tx Tx, c *model.Clinic) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Clinic, error)
	List(ctx context.Context, tx Tx) ([]*model.Clinic, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

type VeterinarianRepository interface {
	Save(ctx context.Context, tx Tx, v *model.Veterinarian) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Veterinarian, error)
	List(ctx context.Context, tx Tx) ([]*model.Veterinarian, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

type PatientRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Patient) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Patient, error)
	List(ctx context.Context, tx Tx) ([]*model.Patient, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
