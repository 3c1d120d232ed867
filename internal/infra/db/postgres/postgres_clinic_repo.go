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

var _ repository.ClinicRepository = (*clinicRepo)(nil)

type clinicRepo struct {
	pool *pgxpool.Pool
}

func NewClinicRepo(pool *pgxpool.Pool) *clinicRepo {
	return &clinicRepo{pool: pool}
}

func (r *clinicRepo) Save(ctx context.Context, tx repository.Tx, c *model.Clinic) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	const q = `
INSERT INTO clinics (id, name, address, city, state, postal_code, country, phone, email, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  address = EXCLUDED.address,
  city = EXCLUDED.city,
  state = EXCLUDED.state,
  postal_code = EXCLUDED.postal_code,
  country = EXCLUDED.country,
  phone = EXCLUDED.phone,
  email = EXCLUDED.email,
  updated_at = EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q,
		c.ID, c.Name, c.Address, c.City, c.State, c.PostalCode, c.Country,
		c.Phone, c.Email, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *clinicRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Clinic, error) {
	const q = `
SELECT id, name, address, city, state, postal_code, country, phone, email, created_at, updated_at
FROM clinics WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var c model.Clinic
	err = row.Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.State, &c.PostalCode,
		&c.Country, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &c, nil
}

func (r *clinicRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Clinic, error) {
	const q = `
SELECT id, name, address, city, state, postal_code, country, phone, email, created_at, updated_at
FROM clinics ORDER BY name;`

	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Clinic
	for rows.Next() {
		var c model.Clinic
		err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.State, &c.PostalCode,
			&c.Country, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *clinicRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM clinics WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
