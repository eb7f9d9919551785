package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
	"github.com/slashexp/experiences/internal/pkg/metrics"
)

// CatalogService handles experience catalog reads with read-through caching.
type CatalogService struct {
	experiences ports.ExperienceRepository
	cache       ports.CacheService
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(experiences ports.ExperienceRepository, cache ports.CacheService) *CatalogService {
	return &CatalogService{experiences: experiences, cache: cache}
}

// List returns experiences matching the filter.
func (s *CatalogService) List(ctx context.Context, filter domain.ExperienceFilter) ([]domain.Experience, error) {
	// Every filter field must land in the key or two different queries
	// would share an entry.
	cacheKey := fmt.Sprintf("catalog:list:%s:%s:%d:%d:%s%s%s%s%s",
		filter.Category, filter.NicheCategory, filter.MinPrice, filter.MaxPrice,
		boolFlag(filter.Trending), boolFlag(filter.Featured),
		boolFlag(filter.Romantic), boolFlag(filter.Adventurous), boolFlag(filter.GroupActivity))
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var exps []domain.Experience
			if err := json.Unmarshal(data, &exps); err == nil {
				metrics.CacheHits.WithLabelValues("catalog_list").Inc()
				return exps, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("catalog_list").Inc()
	}

	exps, err := s.experiences.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Catalog edits are admin-driven and rare; 2 minutes is plenty.
	if s.cache != nil {
		if data, err := json.Marshal(exps); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 120)
		}
	}

	return exps, nil
}

// Search performs trigram text search on titles and locations.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.Experience, error) {
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("catalog:search:%s:%d", query, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var exps []domain.Experience
			if err := json.Unmarshal(data, &exps); err == nil {
				metrics.CacheHits.WithLabelValues("catalog_search").Inc()
				return exps, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("catalog_search").Inc()
	}

	exps, err := s.experiences.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(exps); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 120)
		}
	}

	return exps, nil
}

// GetByID returns a single experience.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	cacheKey := "catalog:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var e domain.Experience
			if err := json.Unmarshal(data, &e); err == nil {
				metrics.CacheHits.WithLabelValues("catalog_get").Inc()
				return &e, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("catalog_get").Inc()
	}

	e, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(e); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return e, nil
}

func boolFlag(b *bool) string {
	if b == nil {
		return "-"
	}
	if *b {
		return "t"
	}
	return "f"
}
