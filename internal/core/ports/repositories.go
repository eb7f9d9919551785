package ports

import (
	"context"

	"github.com/slashexp/experiences/internal/core/domain"
)

// ExperienceRepository persists catalog listings.
type ExperienceRepository interface {
	Create(ctx context.Context, e *domain.Experience) error
	Update(ctx context.Context, e *domain.Experience) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Experience, error)
	List(ctx context.Context, filter domain.ExperienceFilter) ([]domain.Experience, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Experience, error)
}

// CategoryRepository persists browse categories.
type CategoryRepository interface {
	Upsert(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// ProviderRepository persists partner providers.
type ProviderRepository interface {
	Upsert(ctx context.Context, p *domain.Provider) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	List(ctx context.Context) ([]domain.Provider, error)
}

// UserRepository persists storefront accounts.
type UserRepository interface {
	Upsert(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// OrderRepository persists checkout orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// ClickLogRepository persists redirector click events.
type ClickLogRepository interface {
	Insert(ctx context.Context, e *domain.ClickEvent) error
	InsertBatch(ctx context.Context, events []domain.ClickEvent) error
	CountBySlug(ctx context.Context, slug string) (int, error)
}

// RedirectLinkRepository resolves short slugs to partner URLs. Links are
// managed through the back-office API.
type RedirectLinkRepository interface {
	Upsert(ctx context.Context, l *domain.RedirectLink) error
	GetBySlug(ctx context.Context, slug string) (*domain.RedirectLink, error)
	List(ctx context.Context) ([]domain.RedirectLink, error)
}

// PreferenceStore is the per-user key-value boundary for UI preferences
// (selected_city, selected_address, cart, wishlist). Semantics are
// deliberately weak: read-then-write, last writer wins, no expiry.
type PreferenceStore interface {
	Get(ctx context.Context, userID, key string) ([]byte, error)
	Set(ctx context.Context, userID, key string, value []byte) error
	Delete(ctx context.Context, userID, key string) error
}
