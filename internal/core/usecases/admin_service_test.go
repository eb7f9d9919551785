package usecases_test

import (
	"context"
	"testing"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/usecases"
)

type mockCategoryRepo struct {
	upserted []domain.Category
}

func (m *mockCategoryRepo) Upsert(ctx context.Context, c *domain.Category) error {
	m.upserted = append(m.upserted, *c)
	return nil
}
func (m *mockCategoryRepo) Delete(ctx context.Context, slug string) error { return nil }
func (m *mockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return nil, nil
}
func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) { return nil, nil }

func adminFixture() (*usecases.AdminService, *mockExperienceRepo, *mockCache) {
	repo := &mockExperienceRepo{}
	cache := newMockCache()
	svc := usecases.NewAdminService(nil, nil, &mockCategoryRepo{}, repo, &mockLinkRepo{}, cache)
	return svc, repo, cache
}

func TestAdminService_SaveExperience_Validation(t *testing.T) {
	svc, _, _ := adminFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		exp  domain.Experience
	}{
		{"missing title", domain.Experience{Price: 100}},
		{"negative price", domain.Experience{Title: "x", Price: -1}},
		{"lat without lon", domain.Experience{Title: "x", Latitude: ptr(12.9)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.SaveExperience(ctx, &tc.exp); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAdminService_SaveExperience_CreateVsUpdate(t *testing.T) {
	svc, repo, _ := adminFixture()
	ctx := context.Background()

	created, updated := 0, 0
	repo.createFn = func(ctx context.Context, e *domain.Experience) error {
		created++
		return nil
	}
	repo.updateFn = func(ctx context.Context, e *domain.Experience) error {
		updated++
		return nil
	}

	if err := svc.SaveExperience(ctx, &domain.Experience{Title: "New Listing"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SaveExperience(ctx, &domain.Experience{ID: "exp-1", Title: "Edited"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 1 || updated != 1 {
		t.Errorf("expected 1 create and 1 update, got %d/%d", created, updated)
	}
}

func TestAdminService_SaveExperience_InvalidatesCache(t *testing.T) {
	svc, _, cache := adminFixture()
	ctx := context.Background()

	cache.data["catalog:id:exp-1"] = []byte("stale")
	if err := svc.SaveExperience(ctx, &domain.Experience{ID: "exp-1", Title: "Edited"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.data["catalog:id:exp-1"]; ok {
		t.Error("expected cache entry invalidated")
	}
}

func TestAdminService_SaveCategory_RequiresSlugAndName(t *testing.T) {
	svc, _, _ := adminFixture()
	if err := svc.SaveCategory(context.Background(), &domain.Category{Name: "Dining"}); err == nil {
		t.Error("expected error for missing slug")
	}
}

func TestAdminService_SaveLink(t *testing.T) {
	links := &mockLinkRepo{}
	svc := usecases.NewAdminService(nil, nil, &mockCategoryRepo{}, &mockExperienceRepo{}, links, nil)
	ctx := context.Background()

	if err := svc.SaveLink(ctx, &domain.RedirectLink{URL: "https://partner.example/spa"}); err == nil {
		t.Error("expected error for missing slug")
	}
	if err := svc.SaveLink(ctx, &domain.RedirectLink{Slug: "spa-day", URL: "partner.example/spa"}); err == nil {
		t.Error("expected error for relative url")
	}

	if err := svc.SaveLink(ctx, &domain.RedirectLink{Slug: "spa-day", URL: "https://partner.example/spa", Partner: "acme"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := links.GetBySlug(ctx, "spa-day")
	if err != nil || got.URL != "https://partner.example/spa" {
		t.Errorf("expected stored link, got %+v (%v)", got, err)
	}

	all, err := svc.ListLinks(ctx)
	if err != nil || len(all) != 1 {
		t.Errorf("expected 1 link listed, got %d (%v)", len(all), err)
	}
}
