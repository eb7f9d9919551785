package postgres

import (
	"context"

	"github.com/slashexp/experiences/internal/core/domain"
)

// CategoryRepo implements ports.CategoryRepository with pgx.
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Upsert inserts or updates a category keyed by slug.
func (r *CategoryRepo) Upsert(ctx context.Context, c *domain.Category) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO categories (slug, name, description, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
		    image_url = EXCLUDED.image_url
		RETURNING id, created_at
	`, c.Slug, c.Name, c.Description, c.ImageURL).Scan(&c.ID, &c.CreatedAt)
}

// Delete removes a category by slug.
func (r *CategoryRepo) Delete(ctx context.Context, slug string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM categories WHERE slug = $1`, slug)
	return err
}

// GetBySlug returns a category by slug.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name, COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM categories WHERE slug = $1
	`, slug).Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name, COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
