package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/repository"
)

var _ repository.PatientRepository = (*patientRepo)(nil)

type patientRepo struct {
	pool *pgxpool.Pool
}

func NewPatientRepo(pool *pgxpool.Pool) *patientRepo {
	return &patientRepo{pool: pool}
}

func (r *patientRepo) Save(ctx context.Context, tx repository.Tx, p *model.Patient) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	const q = `
INSERT INTO patients (id, name, species, breed, age, owner_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  species = EXCLUDED.species,
  breed = EXCLUDED.breed,
  age = EXCLUDED.age,
  owner_name = EXCLUDED.owner_name,
  updated_at = EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.Name, p.Species, p.Breed, p.Age, p.OwnerName, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *patientRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Patient, error) {
	const q = `
SELECT id, name, species, breed, age, owner_name, created_at, updated_at
FROM patients WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var p model.Patient
	err = row.Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.Age, &p.OwnerName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}

func (r *patientRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Patient, error) {
	const q = `
SELECT id, name, species, breed, age, owner_name, created_at, updated_at
FROM patients ORDER BY name;`

	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Patient
	for rows.Next() {
		var p model.Patient
		err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.Age, &p.OwnerName, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *patientRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM patients WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
