package postgres

import (
	"context"

	"github.com/slashexp/experiences/internal/core/domain"
)

// ProviderRepo implements ports.ProviderRepository with pgx.
type ProviderRepo struct {
	db *DB
}

// NewProviderRepo creates a new ProviderRepo.
func NewProviderRepo(db *DB) *ProviderRepo {
	return &ProviderRepo{db: db}
}

// Upsert inserts or updates a provider keyed by slug.
func (r *ProviderRepo) Upsert(ctx context.Context, p *domain.Provider) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO providers (slug, name, email, phone, location, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
		    location = EXCLUDED.location, active = EXCLUDED.active
		RETURNING id, created_at
	`, p.Slug, p.Name, p.Email, p.Phone, p.Location, p.Active).Scan(&p.ID, &p.CreatedAt)
}

// Delete removes a provider by ID.
func (r *ProviderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM providers WHERE id = $1`, id)
	return err
}

// GetByID returns a provider by UUID.
func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(location, ''), active, created_at
		FROM providers WHERE id = $1
	`, id).Scan(&p.ID, &p.Slug, &p.Name, &p.Email, &p.Phone, &p.Location, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all providers ordered by name.
func (r *ProviderRepo) List(ctx context.Context) ([]domain.Provider, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(location, ''), active, created_at
		FROM providers ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []domain.Provider
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Email, &p.Phone, &p.Location, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}
