package usecases_test

import (
	"testing"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/usecases"
)

func ptr(f float64) *float64 { return &f }

var bangalore = domain.GeoPoint{Lat: 12.9716, Lon: 77.5946}

func TestResolveStoredLocation_GeocodedAddress(t *testing.T) {
	loc := usecases.ResolveStoredLocation([]byte(`{"address":"MG Road, Bangalore","lat":"12.9716","lon":"77.5946"}`), nil)
	if loc.Kind != domain.LocationPoint {
		t.Fatalf("expected point location, got kind %d", loc.Kind)
	}
	if loc.Point.Lat != 12.9716 || loc.Point.Lon != 77.5946 {
		t.Errorf("unexpected point: %+v", loc.Point)
	}
	if loc.Address != "MG Road, Bangalore" {
		t.Errorf("unexpected address: %s", loc.Address)
	}
}

func TestResolveStoredLocation_MalformedAddressFallsBackToCity(t *testing.T) {
	loc := usecases.ResolveStoredLocation([]byte(`not valid json{`), []byte("Mumbai"))
	if loc.Kind != domain.LocationCity {
		t.Fatalf("expected city fallback, got kind %d", loc.Kind)
	}
	if loc.City != "Mumbai" {
		t.Errorf("expected Mumbai, got %s", loc.City)
	}
}

func TestResolveStoredLocation_MalformedAddressNoCity(t *testing.T) {
	loc := usecases.ResolveStoredLocation([]byte(`not valid json{`), nil)
	if loc.Kind != domain.LocationNone {
		t.Fatalf("expected no location, got kind %d", loc.Kind)
	}
}

func TestResolveStoredLocation_NonNumericCoordinates(t *testing.T) {
	loc := usecases.ResolveStoredLocation([]byte(`{"address":"x","lat":"abc","lon":"77.5"}`), []byte("Delhi"))
	if loc.Kind != domain.LocationCity {
		t.Fatalf("expected city fallback for non-numeric lat, got kind %d", loc.Kind)
	}
}

func TestResolveStoredLocation_Empty(t *testing.T) {
	loc := usecases.ResolveStoredLocation(nil, nil)
	if loc.Kind != domain.LocationNone {
		t.Fatalf("expected no location, got kind %d", loc.Kind)
	}
}

func TestRankByProximity_FiltersAndSorts(t *testing.T) {
	exps := []domain.Experience{
		{ID: "mumbai", Latitude: ptr(19.0760), Longitude: ptr(72.8777), Price: 800},
		{ID: "blr", Latitude: ptr(12.9716), Longitude: ptr(77.5946), Price: 1500},
	}

	ranked := usecases.RankByProximity(exps, bangalore, 10)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 experience within 10 km, got %d", len(ranked))
	}
	if ranked[0].ID != "blr" {
		t.Errorf("expected blr first, got %s", ranked[0].ID)
	}
	if ranked[0].DistanceKm == nil || *ranked[0].DistanceKm != 0 {
		t.Errorf("expected distance 0 at identical coordinates")
	}
}

func TestRankByProximity_MissingCoordinateExcluded(t *testing.T) {
	exps := []domain.Experience{
		{ID: "half", Latitude: nil, Longitude: ptr(77.5)},
		{ID: "full", Latitude: ptr(12.97), Longitude: ptr(77.59)},
	}

	ranked := usecases.RankByProximity(exps, bangalore, 40)
	if len(ranked) != 1 || ranked[0].ID != "full" {
		t.Fatalf("expected only the fully-geocoded experience, got %+v", ranked)
	}
}

func TestRankByProximity_RadiusMonotonic(t *testing.T) {
	exps := []domain.Experience{
		{ID: "a", Latitude: ptr(12.9716), Longitude: ptr(77.5946)},
		{ID: "b", Latitude: ptr(13.05), Longitude: ptr(77.60)},
		{ID: "c", Latitude: ptr(13.30), Longitude: ptr(77.70)},
	}

	included := map[float64]map[string]bool{}
	for _, radius := range []float64{5, 10, 40, 100} {
		ids := map[string]bool{}
		for _, e := range usecases.RankByProximity(exps, bangalore, radius) {
			ids[e.ID] = true
		}
		included[radius] = ids
	}

	// Growing the radius never removes a previously included experience.
	radii := []float64{5, 10, 40, 100}
	for i := 1; i < len(radii); i++ {
		for id := range included[radii[i-1]] {
			if !included[radii[i]][id] {
				t.Errorf("experience %s included at %v km but missing at %v km", id, radii[i-1], radii[i])
			}
		}
	}
}

func TestRankByProximity_SortedAscending(t *testing.T) {
	exps := []domain.Experience{
		{ID: "far", Latitude: ptr(13.05), Longitude: ptr(77.60)},
		{ID: "near", Latitude: ptr(12.98), Longitude: ptr(77.60)},
	}

	ranked := usecases.RankByProximity(exps, bangalore, 40)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 experiences, got %d", len(ranked))
	}
	if ranked[0].ID != "near" || ranked[1].ID != "far" {
		t.Errorf("expected [near far], got [%s %s]", ranked[0].ID, ranked[1].ID)
	}
	if *ranked[0].DistanceKm > *ranked[1].DistanceKm {
		t.Error("distances not ascending")
	}
}

func TestRankByProximity_DoesNotMutateInput(t *testing.T) {
	exps := []domain.Experience{
		{ID: "a", Latitude: ptr(12.9716), Longitude: ptr(77.5946)},
	}
	_ = usecases.RankByProximity(exps, bangalore, 10)
	if exps[0].DistanceKm != nil {
		t.Error("input slice was mutated with a computed distance")
	}
}

func TestFilterByCity_BidirectionalSubstring(t *testing.T) {
	exps := []domain.Experience{
		{ID: "1", Location: "Delhi"},
		{ID: "2", Location: "New Delhi, India"},
		{ID: "3", Location: "Mumbai"},
	}

	matched := usecases.FilterByCity(exps, "Delhi")
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].ID != "1" || matched[1].ID != "2" {
		t.Errorf("expected original order [1 2], got [%s %s]", matched[0].ID, matched[1].ID)
	}
}

func TestFilterByCity_CaseAndWhitespaceInsensitive(t *testing.T) {
	exps := []domain.Experience{{ID: "1", Location: "Mumbai, Maharashtra"}}

	a := usecases.FilterByCity(exps, "  Mumbai ")
	b := usecases.FilterByCity(exps, "mumbai")
	if len(a) != 1 || len(b) != 1 {
		t.Errorf("expected both spellings to match, got %d and %d", len(a), len(b))
	}
}

func TestRank_NoLocationReturnsInputUnchanged(t *testing.T) {
	exps := []domain.Experience{{ID: "1"}, {ID: "2"}}
	out := usecases.Rank(exps, domain.ResolvedLocation{Kind: domain.LocationNone}, 10)
	if len(out) != 2 || out[0].ID != "1" || out[1].ID != "2" {
		t.Errorf("expected unchanged input, got %+v", out)
	}
}

func TestRank_PointPathScenario(t *testing.T) {
	exps := []domain.Experience{
		{ID: "A", Price: 1500, Latitude: ptr(12.9716), Longitude: ptr(77.5946)},
		{ID: "B", Price: 800, Latitude: ptr(19.0760), Longitude: ptr(72.8777)},
	}
	loc := domain.ResolvedLocation{Kind: domain.LocationPoint, Point: bangalore}

	out := usecases.Rank(exps, loc, 10)
	if len(out) != 1 || out[0].ID != "A" {
		t.Fatalf("expected [A], got %+v", out)
	}
}
