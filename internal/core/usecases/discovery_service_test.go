package usecases_test

import (
	"context"
	"testing"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/usecases"
)

func discoveryFixture(repo *mockExperienceRepo, prefs *mockPrefStore) *usecases.DiscoveryService {
	locations := usecases.NewLocationService(prefs, &mockGeocoder{}, nil)
	return usecases.NewDiscoveryService(repo, locations, 10)
}

func catalogOf(exps ...domain.Experience) *mockExperienceRepo {
	return &mockExperienceRepo{
		listFn: func(ctx context.Context, filter domain.ExperienceFilter) ([]domain.Experience, error) {
			return exps, nil
		},
	}
}

func TestDiscoveryService_Nearby_GeocodedAddress(t *testing.T) {
	repo := catalogOf(
		domain.Experience{ID: "blr", Latitude: ptr(12.9716), Longitude: ptr(77.5946)},
		domain.Experience{ID: "mumbai", Latitude: ptr(19.0760), Longitude: ptr(72.8777)},
	)
	prefs := newMockPrefStore()
	prefs.data["u1/"+usecases.PrefSelectedAddress] = []byte(`{"address":"Bangalore","lat":"12.9716","lon":"77.5946"}`)

	svc := discoveryFixture(repo, prefs)
	exps, loc, err := svc.Nearby(context.Background(), "u1", domain.ExperienceFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Kind != domain.LocationPoint {
		t.Fatalf("expected point location, got %+v", loc)
	}
	if len(exps) != 1 || exps[0].ID != "blr" {
		t.Fatalf("expected only blr within 10 km, got %+v", exps)
	}
}

func TestDiscoveryService_Nearby_CityName(t *testing.T) {
	repo := catalogOf(
		domain.Experience{ID: "1", Location: "Delhi"},
		domain.Experience{ID: "2", Location: "New Delhi, India"},
		domain.Experience{ID: "3", Location: "Mumbai"},
	)
	prefs := newMockPrefStore()
	prefs.data["u1/"+usecases.PrefSelectedCity] = []byte("Delhi")

	svc := discoveryFixture(repo, prefs)
	exps, _, err := svc.Nearby(context.Background(), "u1", domain.ExperienceFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exps) != 2 {
		t.Fatalf("expected 2 Delhi matches, got %d", len(exps))
	}
}

func TestDiscoveryService_Nearby_NoPreference(t *testing.T) {
	repo := catalogOf(
		domain.Experience{ID: "1"},
		domain.Experience{ID: "2"},
	)

	svc := discoveryFixture(repo, newMockPrefStore())
	exps, loc, err := svc.Nearby(context.Background(), "u1", domain.ExperienceFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Kind != domain.LocationNone {
		t.Errorf("expected no location, got %+v", loc)
	}
	if len(exps) != 2 {
		t.Errorf("expected unfiltered list, got %d items", len(exps))
	}
}

func TestDiscoveryService_NearPoint_Limit(t *testing.T) {
	repo := catalogOf(
		domain.Experience{ID: "a", Latitude: ptr(12.9716), Longitude: ptr(77.5946)},
		domain.Experience{ID: "b", Latitude: ptr(12.9800), Longitude: ptr(77.6000)},
		domain.Experience{ID: "c", Latitude: ptr(13.0000), Longitude: ptr(77.6100)},
	)

	svc := discoveryFixture(repo, newMockPrefStore())
	exps, err := svc.NearPoint(context.Background(), domain.GeoPoint{Lat: 12.9716, Lon: 77.5946}, domain.ExperienceFilter{}, 40, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exps) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(exps))
	}
	if exps[0].ID != "a" {
		t.Errorf("expected nearest first, got %s", exps[0].ID)
	}
}
