package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/slashexp/experiences/internal/core/domain"
)

// ExperienceRepo implements ports.ExperienceRepository with pgx.
type ExperienceRepo struct {
	db *DB
}

// NewExperienceRepo creates a new ExperienceRepo.
func NewExperienceRepo(db *DB) *ExperienceRepo {
	return &ExperienceRepo{db: db}
}

const experienceColumns = `
	id, COALESCE(provider_id::text, ''), title, COALESCE(description, ''), COALESCE(image_url, ''),
	price, COALESCE(location, ''), latitude, longitude,
	COALESCE(duration, ''), participants, date,
	COALESCE(category, ''), COALESCE(niche_category, ''),
	trending, featured, romantic, adventurous, group_activity, created_at`

func scanExperience(row interface{ Scan(...any) error }) (*domain.Experience, error) {
	var e domain.Experience
	err := row.Scan(
		&e.ID, &e.ProviderID, &e.Title, &e.Description, &e.ImageURL,
		&e.Price, &e.Location, &e.Latitude, &e.Longitude,
		&e.Duration, &e.Participants, &e.Date,
		&e.Category, &e.NicheCategory,
		&e.Trending, &e.Featured, &e.Romantic, &e.Adventurous, &e.GroupActivity, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new experience and fills in the generated ID.
func (r *ExperienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO experiences (provider_id, title, description, image_url, price, location,
		                         latitude, longitude, duration, participants, date,
		                         category, niche_category,
		                         trending, featured, romantic, adventurous, group_activity)
		VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at
	`, e.ProviderID, e.Title, e.Description, e.ImageURL, e.Price, e.Location,
		e.Latitude, e.Longitude, e.Duration, e.Participants, e.Date,
		e.Category, e.NicheCategory,
		e.Trending, e.Featured, e.Romantic, e.Adventurous, e.GroupActivity,
	).Scan(&e.ID, &e.CreatedAt)
}

// Update replaces an existing experience.
func (r *ExperienceRepo) Update(ctx context.Context, e *domain.Experience) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE experiences
		SET provider_id = NULLIF($2, '')::uuid, title = $3, description = $4, image_url = $5,
		    price = $6, location = $7, latitude = $8, longitude = $9,
		    duration = $10, participants = $11, date = $12,
		    category = $13, niche_category = $14,
		    trending = $15, featured = $16, romantic = $17, adventurous = $18, group_activity = $19
		WHERE id = $1
	`, e.ID, e.ProviderID, e.Title, e.Description, e.ImageURL,
		e.Price, e.Location, e.Latitude, e.Longitude,
		e.Duration, e.Participants, e.Date,
		e.Category, e.NicheCategory,
		e.Trending, e.Featured, e.Romantic, e.Adventurous, e.GroupActivity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("experience %s not found", e.ID)
	}
	return nil
}

// Delete removes an experience by ID.
func (r *ExperienceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	return err
}

// GetByID returns an experience by UUID.
func (r *ExperienceRepo) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id)
	return scanExperience(row)
}

// List returns experiences matching the filter, newest first.
func (r *ExperienceRepo) List(ctx context.Context, filter domain.ExperienceFilter) ([]domain.Experience, error) {
	conds := []string{"TRUE"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conds = append(conds, "category = "+arg(filter.Category))
	}
	if filter.NicheCategory != "" {
		conds = append(conds, "niche_category = "+arg(filter.NicheCategory))
	}
	if filter.MinPrice > 0 {
		conds = append(conds, "price >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conds = append(conds, "price <= "+arg(filter.MaxPrice))
	}
	flags := []struct {
		col string
		val *bool
	}{
		{"trending", filter.Trending},
		{"featured", filter.Featured},
		{"romantic", filter.Romantic},
		{"adventurous", filter.Adventurous},
		{"group_activity", filter.GroupActivity},
	}
	for _, f := range flags {
		if f.val != nil {
			conds = append(conds, f.col+" = "+arg(*f.val))
		}
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+experienceColumns+` FROM experiences
		 WHERE `+strings.Join(conds, " AND ")+`
		 ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []domain.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		exps = append(exps, *e)
	}
	return exps, rows.Err()
}

// Search performs trigram fuzzy matching on title and description.
func (r *ExperienceRepo) Search(ctx context.Context, query string, limit int) ([]domain.Experience, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+experienceColumns+`, similarity(title, $1) AS sim
		 FROM experiences
		 WHERE title % $1 OR description % $1 OR title ILIKE '%' || $1 || '%'
		 ORDER BY sim DESC
		 LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []domain.Experience
	for rows.Next() {
		var e domain.Experience
		var sim float64
		if err := rows.Scan(
			&e.ID, &e.ProviderID, &e.Title, &e.Description, &e.ImageURL,
			&e.Price, &e.Location, &e.Latitude, &e.Longitude,
			&e.Duration, &e.Participants, &e.Date,
			&e.Category, &e.NicheCategory,
			&e.Trending, &e.Featured, &e.Romantic, &e.Adventurous, &e.GroupActivity, &e.CreatedAt,
			&sim,
		); err != nil {
			return nil, err
		}
		exps = append(exps, e)
	}
	return exps, rows.Err()
}
