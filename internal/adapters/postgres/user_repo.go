package postgres

import (
	"context"

	"github.com/slashexp/experiences/internal/core/domain"
)

// UserRepo implements ports.UserRepository with pgx.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserts or updates a user keyed by email.
func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	if u.Role == "" {
		u.Role = "user"
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, role = EXCLUDED.role
		RETURNING id, created_at
	`, u.Email, u.Name, u.Role).Scan(&u.ID, &u.CreatedAt)
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// GetByID returns a user by UUID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, email, COALESCE(name, ''), role, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users, newest first.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, email, COALESCE(name, ''), role, created_at
		FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
