package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
)

// RedirectService resolves partner slugs and records click-throughs.
type RedirectService struct {
	links     ports.RedirectLinkRepository
	clicks    ports.ClickLogRepository
	publisher ports.EventPublisher
}

// NewRedirectService creates a new RedirectService.
func NewRedirectService(links ports.RedirectLinkRepository, clicks ports.ClickLogRepository, publisher ports.EventPublisher) *RedirectService {
	return &RedirectService{links: links, clicks: clicks, publisher: publisher}
}

// Resolve looks up the slug, logs the click, and returns the target URL.
// Click logging is best-effort: a failed insert must not block the redirect.
func (s *RedirectService) Resolve(ctx context.Context, slug, referrer, userAgent string) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("slug is required")
	}

	link, err := s.links.GetBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("unknown link %q: %w", slug, err)
	}

	event := &domain.ClickEvent{
		Slug:      link.Slug,
		Partner:   link.Partner,
		URL:       link.URL,
		Referrer:  referrer,
		UserAgent: userAgent,
		Time:      time.Now(),
	}

	if s.clicks != nil {
		_ = s.clicks.Insert(ctx, event)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishClick(ctx, event)
	}

	return link.URL, nil
}

// Stats returns the click count for one slug.
func (s *RedirectService) Stats(ctx context.Context, slug string) (int, error) {
	if slug == "" {
		return 0, fmt.Errorf("slug is required")
	}
	return s.clicks.CountBySlug(ctx, slug)
}
