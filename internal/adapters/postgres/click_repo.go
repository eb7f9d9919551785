package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/slashexp/experiences/internal/core/domain"
)

// ClickLogRepo implements ports.ClickLogRepository with pgx.
type ClickLogRepo struct {
	db *DB
}

// NewClickLogRepo creates a new ClickLogRepo.
func NewClickLogRepo(db *DB) *ClickLogRepo {
	return &ClickLogRepo{db: db}
}

// Insert records one click event.
func (r *ClickLogRepo) Insert(ctx context.Context, e *domain.ClickEvent) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO click_logs (slug, partner, url, referrer, user_agent, clicked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.Slug, e.Partner, e.URL, e.Referrer, e.UserAgent, e.Time)
	return err
}

// InsertBatch records many click events with pgx.Batch. The redirector
// flushes buffered events through here.
func (r *ClickLogRepo) InsertBatch(ctx context.Context, events []domain.ClickEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO click_logs (slug, partner, url, referrer, user_agent, clicked_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.Slug, e.Partner, e.URL, e.Referrer, e.UserAgent, e.Time)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// CountBySlug returns the total clicks recorded for one slug.
func (r *ClickLogRepo) CountBySlug(ctx context.Context, slug string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM click_logs WHERE slug = $1`, slug).Scan(&n)
	return n, err
}
