package postgres

import (
	"context"

	"github.com/slashexp/experiences/internal/core/domain"
)

// RedirectLinkRepo implements ports.RedirectLinkRepository with pgx.
type RedirectLinkRepo struct {
	db *DB
}

// NewRedirectLinkRepo creates a new RedirectLinkRepo.
func NewRedirectLinkRepo(db *DB) *RedirectLinkRepo {
	return &RedirectLinkRepo{db: db}
}

// Upsert inserts or updates a link keyed by slug.
func (r *RedirectLinkRepo) Upsert(ctx context.Context, l *domain.RedirectLink) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO redirect_links (slug, url, partner)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE
		SET url = EXCLUDED.url, partner = EXCLUDED.partner
	`, l.Slug, l.URL, l.Partner)
	return err
}

// GetBySlug returns the link for one slug.
func (r *RedirectLinkRepo) GetBySlug(ctx context.Context, slug string) (*domain.RedirectLink, error) {
	var l domain.RedirectLink
	err := r.db.Pool.QueryRow(ctx, `
		SELECT slug, url, COALESCE(partner, '')
		FROM redirect_links WHERE slug = $1
	`, slug).Scan(&l.Slug, &l.URL, &l.Partner)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all configured links.
func (r *RedirectLinkRepo) List(ctx context.Context) ([]domain.RedirectLink, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT slug, url, COALESCE(partner, '') FROM redirect_links ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.RedirectLink
	for rows.Next() {
		var l domain.RedirectLink
		if err := rows.Scan(&l.Slug, &l.URL, &l.Partner); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
