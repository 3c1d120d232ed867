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

var _ repository.VeterinarianRepository = (*veterinarianRepo)(nil)

type veterinarianRepo struct {
	pool *pgxpool.Pool
}

func NewVeterinarianRepo(pool *pgxpool.Pool) *veterinarianRepo {
	return &veterinarianRepo{pool: pool}
}

func (r *veterinarianRepo) Save(ctx context.Context, tx repository.Tx, v *model.Veterinarian) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	const q = `
INSERT INTO veterinarians (id, name, license_number, clinic_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  license_number = EXCLUDED.license_number,
  clinic_id = EXCLUDED.clinic_id,
  updated_at = EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q,
		v.ID, v.Name, v.LicenseNumber, v.ClinicID, v.CreatedAt, v.UpdatedAt)
	return err
}

func (r *veterinarianRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Veterinarian, error) {
	const q = `
SELECT id, name, license_number, clinic_id, created_at, updated_at
FROM veterinarians WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var v model.Veterinarian
	err = row.Scan(&v.ID, &v.Name, &v.LicenseNumber, &v.ClinicID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &v, nil
}

func (r *veterinarianRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Veterinarian, error) {
	const q = `
SELECT id, name, license_number, clinic_id, created_at, updated_at
FROM veterinarians ORDER BY name;`

	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Veterinarian
	for rows.Next() {
		var v model.Veterinarian
		err := rows.Scan(&v.ID, &v.Name, &v.LicenseNumber, &v.ClinicID, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *veterinarianRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM veterinarians WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
