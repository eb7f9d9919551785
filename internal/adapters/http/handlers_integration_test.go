//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slashexp/experiences/internal/adapters/http"
	"github.com/slashexp/experiences/internal/adapters/postgres"
	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/usecases"
	"github.com/slashexp/experiences/internal/pkg/config"
)

// setupTestDB connects to the test database and returns a clean DB instance.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("slashexp-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with real DB repos, no cache or brokers.
func setupTestDeps(t *testing.T, db *postgres.DB) *http.Dependencies {
	expRepo := postgres.NewExperienceRepo(db)
	catRepo := postgres.NewCategoryRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	linkRepo := postgres.NewRedirectLinkRepo(db)
	clickRepo := postgres.NewClickLogRepo(db)

	prefs := newMemPrefs()
	locations := usecases.NewLocationService(prefs, &mockGeocoder{}, nil)

	return &http.Dependencies{
		Catalog:      usecases.NewCatalogService(expRepo, nil),
		Discovery:    usecases.NewDiscoveryService(expRepo, locations, 0),
		Locations:    locations,
		Cart:         usecases.NewCartService(prefs, expRepo, orderRepo, &mockGateway{}, &mockPublisher{}, &mockWorkflows{}, "INR"),
		Wishlist:     usecases.NewWishlistService(prefs, expRepo),
		Personalizer: usecases.NewPersonalizerService(newMemCache(), nil, expRepo),
		Admin:        usecases.NewAdminService(postgres.NewUserRepo(db), postgres.NewProviderRepo(db), catRepo, expRepo, linkRepo, newMemCache()),
		Redirects:    usecases.NewRedirectService(linkRepo, clickRepo, &mockPublisher{}),
		Categories:   catRepo,
		Orders:       orderRepo,
		DB:           db,
	}
}

// seedTestExperience inserts a listing and returns its UUID.
func seedTestExperience(t *testing.T, db *postgres.DB, title, location string, lat, lon *float64) string {
	ctx := context.Background()
	var id string
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO experiences (title, description, price, location, latitude, longitude, category)
		VALUES ($1, 'integration seed', 1000, $2, $3, $4, 'dining')
		RETURNING id
	`, title, location, lat, lon).Scan(&id); err != nil {
		t.Fatalf("seed experience: %v", err)
	}
	return id
}

// TestListExperiences_Integration lists the catalog against a real database.
func TestListExperiences_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedTestExperience(t, db, "Integration Spa "+time.Now().Format("150405"), "Mumbai", nil, nil)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/experiences", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Experience `json:"data"`
		Pagination struct{ Total int } `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Pagination.Total < 1 {
		t.Errorf("expected at least 1 experience, got %d", result.Pagination.Total)
	}
}

// TestGetExperience_Integration fetches one listing by ID.
func TestGetExperience_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	title := "Integration Balloon " + time.Now().Format("20060102150405")
	id := seedTestExperience(t, db, title, "Jaipur", nil, nil)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/experiences/"+id, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var e domain.Experience
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if e.Title != title {
		t.Errorf("expected title %s, got %s", title, e.Title)
	}
}

// TestSearchExperiences_Integration exercises the trigram search path.
func TestSearchExperiences_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedTestExperience(t, db, "Sunset Kayak Paddle", "Goa", nil, nil)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/experiences/search?q=kayak", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var exps []domain.Experience
	if err := json.NewDecoder(resp.Body).Decode(&exps); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(exps) == 0 {
		t.Error("expected at least 1 search hit, got 0")
	}
}
