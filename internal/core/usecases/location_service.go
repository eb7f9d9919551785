package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
	"github.com/slashexp/experiences/internal/pkg/metrics"
)

// Preference-store keys. These mirror the storefront's historical
// local-storage keys, so clients migrate without a rename.
const (
	PrefSelectedCity    = "selected_city"
	PrefSelectedAddress = "selected_address"
	PrefCart            = "cart"
	PrefWishlist        = "wishlist"
)

// LocationService resolves a user's stored location preference and proxies
// geocoding lookups for address suggestions.
type LocationService struct {
	prefs    ports.PreferenceStore
	geocoder ports.Geocoder
	cache    ports.CacheService
}

// NewLocationService creates a new LocationService.
func NewLocationService(prefs ports.PreferenceStore, geocoder ports.Geocoder, cache ports.CacheService) *LocationService {
	return &LocationService{prefs: prefs, geocoder: geocoder, cache: cache}
}

// Resolve reads the stored preference and normalizes it. Missing or
// malformed values degrade to "no location"; this never returns an error
// for bad stored data.
func (s *LocationService) Resolve(ctx context.Context, userID string) domain.ResolvedLocation {
	addrRaw, _ := s.prefs.Get(ctx, userID, PrefSelectedAddress)
	cityRaw, _ := s.prefs.Get(ctx, userID, PrefSelectedCity)
	return ResolveStoredLocation(addrRaw, cityRaw)
}

// SetCity stores a bare city-name preference and clears any geocoded address.
func (s *LocationService) SetCity(ctx context.Context, userID, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return fmt.Errorf("city must not be empty")
	}
	if err := s.prefs.Set(ctx, userID, PrefSelectedCity, []byte(city)); err != nil {
		return fmt.Errorf("store city: %w", err)
	}
	// Address would otherwise shadow the city at resolution time.
	_ = s.prefs.Delete(ctx, userID, PrefSelectedAddress)
	return nil
}

// SetAddress stores a geocoded address preference.
func (s *LocationService) SetAddress(ctx context.Context, userID string, addr domain.StoredAddress) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(addr.Lat), 64); err != nil {
		return fmt.Errorf("lat is not numeric: %q", addr.Lat)
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(addr.Lon), 64); err != nil {
		return fmt.Errorf("lon is not numeric: %q", addr.Lon)
	}

	data, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}
	if err := s.prefs.Set(ctx, userID, PrefSelectedAddress, data); err != nil {
		return fmt.Errorf("store address: %w", err)
	}
	return nil
}

// Clear removes both location preference keys ("location cleared" signal).
func (s *LocationService) Clear(ctx context.Context, userID string) {
	_ = s.prefs.Delete(ctx, userID, PrefSelectedCity)
	_ = s.prefs.Delete(ctx, userID, PrefSelectedAddress)
}

// SuggestAddresses returns geocoder candidates for a partial address.
// Results are cached briefly: the storefront fires these on keystrokes
// (debounced client-side), so identical prefixes repeat heavily.
func (s *LocationService) SuggestAddresses(ctx context.Context, query string, limit int) ([]domain.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	cacheKey := fmt.Sprintf("geocode:search:%s:%d", strings.ToLower(query), limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var results []domain.GeocodeResult
			if err := json.Unmarshal(data, &results); err == nil {
				metrics.CacheHits.WithLabelValues("geocode_search").Inc()
				return results, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("geocode_search").Inc()
	}

	results, err := s.geocoder.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return results, nil
}

// ReverseLookup resolves coordinates to a display address.
func (s *LocationService) ReverseLookup(ctx context.Context, lat, lon float64) (string, error) {
	cacheKey := fmt.Sprintf("geocode:reverse:%.4f:%.4f", lat, lon)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			metrics.CacheHits.WithLabelValues("geocode_reverse").Inc()
			return string(data), nil
		}
		metrics.CacheMisses.WithLabelValues("geocode_reverse").Inc()
	}

	address, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, []byte(address), 3600)
	}

	return address, nil
}
