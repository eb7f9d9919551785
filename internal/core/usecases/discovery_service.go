package usecases

import (
	"context"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
)

// DiscoveryService combines the catalog with the user's resolved location
// to produce "experiences near me" listings. This is the one ranking pass
// shared by the home page, the navbar search, and the suggestion carousel.
type DiscoveryService struct {
	experiences ports.ExperienceRepository
	locations   *LocationService
	radiusKm    float64
}

// NewDiscoveryService creates a new DiscoveryService. radiusKm <= 0 falls
// back to DefaultRadiusKm.
func NewDiscoveryService(experiences ports.ExperienceRepository, locations *LocationService, radiusKm float64) *DiscoveryService {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return &DiscoveryService{experiences: experiences, locations: locations, radiusKm: radiusKm}
}

// Nearby returns experiences relevant to the user's stored location,
// ranked by proximity when coordinates are available. With no stored
// location the filtered catalog comes back unranked. radiusKm <= 0 uses
// the service default; limit <= 0 means unlimited.
func (s *DiscoveryService) Nearby(ctx context.Context, userID string, filter domain.ExperienceFilter, radiusKm float64, limit int) ([]domain.Experience, domain.ResolvedLocation, error) {
	exps, err := s.experiences.List(ctx, filter)
	if err != nil {
		return nil, domain.ResolvedLocation{}, err
	}

	loc := s.locations.Resolve(ctx, userID)
	if radiusKm <= 0 {
		radiusKm = s.radiusKm
	}

	ranked := Rank(exps, loc, radiusKm)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, loc, nil
}

// NearPoint ranks the catalog around an explicit point, bypassing the
// stored preference. Used when the client sends coordinates directly.
func (s *DiscoveryService) NearPoint(ctx context.Context, point domain.GeoPoint, filter domain.ExperienceFilter, radiusKm float64, limit int) ([]domain.Experience, error) {
	exps, err := s.experiences.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if radiusKm <= 0 {
		radiusKm = s.radiusKm
	}

	ranked := RankByProximity(exps, point, radiusKm)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
