package usecases

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/pkg/geo"
)

// DefaultRadiusKm bounds the proximity filter when the caller does not
// supply a radius. The storefront historically used two diverged values
// (10 and 40); the radius is now a single tunable with this default.
const DefaultRadiusKm = 10.0

// ResolveStoredLocation normalizes the raw preference values into a single
// discriminated shape. addrRaw is the JSON-encoded selected_address value,
// cityRaw the bare selected_city string; either may be nil/empty.
//
// A parseable address with numeric lat/lon wins. A malformed address value
// degrades to the city, and a missing city degrades to "no location" —
// this is a UI preference cache, so silent fallback beats error propagation.
func ResolveStoredLocation(addrRaw, cityRaw []byte) domain.ResolvedLocation {
	if len(addrRaw) > 0 {
		var stored domain.StoredAddress
		if err := json.Unmarshal(addrRaw, &stored); err == nil {
			lat, latErr := strconv.ParseFloat(strings.TrimSpace(stored.Lat), 64)
			lon, lonErr := strconv.ParseFloat(strings.TrimSpace(stored.Lon), 64)
			if latErr == nil && lonErr == nil {
				return domain.ResolvedLocation{
					Kind:    domain.LocationPoint,
					Address: stored.Address,
					Point:   domain.GeoPoint{Lat: lat, Lon: lon},
				}
			}
		}
	}

	city := strings.TrimSpace(string(cityRaw))
	if city != "" {
		return domain.ResolvedLocation{Kind: domain.LocationCity, City: city}
	}

	return domain.ResolvedLocation{Kind: domain.LocationNone}
}

// RankByProximity computes the haversine distance from origin to every
// experience with usable coordinates, drops those beyond radiusKm (or
// lacking coordinates), and returns the rest sorted ascending by distance.
// Ties keep their original relative order. The input slice is not mutated.
func RankByProximity(exps []domain.Experience, origin domain.GeoPoint, radiusKm float64) []domain.Experience {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	var ranked []domain.Experience
	for _, e := range exps {
		if !e.HasCoordinates() {
			// Treated as infinitely far: never inside any radius.
			continue
		}
		d := geo.Haversine(origin.Lat, origin.Lon, *e.Latitude, *e.Longitude)
		if d > radiusKm {
			continue
		}
		e.DistanceKm = &d
		ranked = append(ranked, e)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].DistanceKm < *ranked[j].DistanceKm
	})
	return ranked
}

// FilterByCity keeps experiences whose free-text location matches the city
// by bidirectional case-insensitive substring ("Mumbai" matches
// "Mumbai, Maharashtra" and vice versa). Original order is preserved.
func FilterByCity(exps []domain.Experience, city string) []domain.Experience {
	target := strings.ToLower(strings.TrimSpace(city))
	if target == "" {
		return exps
	}

	var matched []domain.Experience
	for _, e := range exps {
		loc := strings.ToLower(strings.TrimSpace(e.Location))
		if loc == "" {
			continue
		}
		if strings.Contains(loc, target) || strings.Contains(target, loc) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Rank applies the ranking pass appropriate for the resolved location:
// proximity for a geocoded point, substring matching for a city, and the
// unmodified input when no location is set.
func Rank(exps []domain.Experience, loc domain.ResolvedLocation, radiusKm float64) []domain.Experience {
	switch loc.Kind {
	case domain.LocationPoint:
		return RankByProximity(exps, loc.Point, radiusKm)
	case domain.LocationCity:
		return FilterByCity(exps, loc.City)
	default:
		return exps
	}
}
