package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
)

// WishlistService manages the preference-store wishlist: a JSON array of
// experience IDs with last-writer-wins semantics.
type WishlistService struct {
	prefs       ports.PreferenceStore
	experiences ports.ExperienceRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(prefs ports.PreferenceStore, experiences ports.ExperienceRepository) *WishlistService {
	return &WishlistService{prefs: prefs, experiences: experiences}
}

func (s *WishlistService) load(ctx context.Context, userID string) []string {
	raw, err := s.prefs.Get(ctx, userID, PrefWishlist)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

// Toggle adds the experience to the wishlist, or removes it if present.
// Returns true when the experience ends up wishlisted.
func (s *WishlistService) Toggle(ctx context.Context, userID, experienceID string) (bool, error) {
	if experienceID == "" {
		return false, fmt.Errorf("experience id is required")
	}

	ids := s.load(ctx, userID)
	kept := ids[:0]
	removed := false
	for _, id := range ids {
		if id == experienceID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, experienceID)
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return false, fmt.Errorf("encode wishlist: %w", err)
	}
	if err := s.prefs.Set(ctx, userID, PrefWishlist, data); err != nil {
		return false, fmt.Errorf("store wishlist: %w", err)
	}
	return !removed, nil
}

// List returns the wishlisted experiences, dropping IDs that no longer
// resolve in the catalog.
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.Experience, error) {
	ids := s.load(ctx, userID)

	var exps []domain.Experience
	for _, id := range ids {
		e, err := s.experiences.GetByID(ctx, id)
		if err != nil {
			continue
		}
		exps = append(exps, *e)
	}
	return exps, nil
}

// Clear empties the wishlist.
func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	return s.prefs.Delete(ctx, userID, PrefWishlist)
}
