package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
)

// AdminService backs the back-office CRUD screens for users, providers,
// categories, and experiences. Validation lives here; repos stay dumb.
type AdminService struct {
	users       ports.UserRepository
	providers   ports.ProviderRepository
	categories  ports.CategoryRepository
	experiences ports.ExperienceRepository
	links       ports.RedirectLinkRepository
	cache       ports.CacheService
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	users ports.UserRepository,
	providers ports.ProviderRepository,
	categories ports.CategoryRepository,
	experiences ports.ExperienceRepository,
	links ports.RedirectLinkRepository,
	cache ports.CacheService,
) *AdminService {
	return &AdminService{
		users:       users,
		providers:   providers,
		categories:  categories,
		experiences: experiences,
		links:       links,
		cache:       cache,
	}
}

// ListUsers returns all storefront accounts.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("user id is required")
	}
	return s.users.Delete(ctx, id)
}

// ListProviders returns all partner providers.
func (s *AdminService) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	return s.providers.List(ctx)
}

// SaveProvider creates or updates a provider.
func (s *AdminService) SaveProvider(ctx context.Context, p *domain.Provider) error {
	if p.Slug == "" || p.Name == "" {
		return fmt.Errorf("provider slug and name are required")
	}
	return s.providers.Upsert(ctx, p)
}

// DeleteProvider removes a provider.
func (s *AdminService) DeleteProvider(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("provider id is required")
	}
	return s.providers.Delete(ctx, id)
}

// ListCategories returns all browse categories.
func (s *AdminService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// SaveCategory creates or updates a category.
func (s *AdminService) SaveCategory(ctx context.Context, c *domain.Category) error {
	if c.Slug == "" || c.Name == "" {
		return fmt.Errorf("category slug and name are required")
	}
	return s.categories.Upsert(ctx, c)
}

// DeleteCategory removes a category by slug.
func (s *AdminService) DeleteCategory(ctx context.Context, slug string) error {
	if slug == "" {
		return fmt.Errorf("category slug is required")
	}
	return s.categories.Delete(ctx, slug)
}

// ListLinks returns all partner redirect links.
func (s *AdminService) ListLinks(ctx context.Context) ([]domain.RedirectLink, error) {
	return s.links.List(ctx)
}

// SaveLink creates or updates a redirect link. The redirector resolves
// out of the same table, so edits take effect on the next click.
func (s *AdminService) SaveLink(ctx context.Context, l *domain.RedirectLink) error {
	if l.Slug == "" {
		return fmt.Errorf("link slug is required")
	}
	if !strings.HasPrefix(l.URL, "http://") && !strings.HasPrefix(l.URL, "https://") {
		return fmt.Errorf("link url must be absolute, got %q", l.URL)
	}
	return s.links.Upsert(ctx, l)
}

// SaveExperience creates or updates a catalog listing and invalidates its
// cache entry so storefront reads pick up the edit.
func (s *AdminService) SaveExperience(ctx context.Context, e *domain.Experience) error {
	if e.Title == "" {
		return fmt.Errorf("experience title is required")
	}
	if e.Price < 0 {
		return fmt.Errorf("experience price must not be negative")
	}
	// One coordinate without the other is worse than none: the listing
	// would look geocoded but never rank.
	if (e.Latitude == nil) != (e.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be set together")
	}

	var err error
	if e.ID == "" {
		err = s.experiences.Create(ctx, e)
	} else {
		err = s.experiences.Update(ctx, e)
	}
	if err != nil {
		return err
	}

	if s.cache != nil && e.ID != "" {
		_ = s.cache.Delete(ctx, "catalog:id:"+e.ID)
	}
	return nil
}

// DeleteExperience removes a catalog listing.
func (s *AdminService) DeleteExperience(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("experience id is required")
	}
	if err := s.experiences.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "catalog:id:"+id)
	}
	return nil
}
