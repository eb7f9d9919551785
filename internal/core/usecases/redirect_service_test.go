package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/usecases"
)

type mockClickLog struct {
	mu      sync.Mutex
	events  []domain.ClickEvent
	batches int
	failing bool
}

func (m *mockClickLog) Insert(ctx context.Context, e *domain.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("insert failed")
	}
	m.events = append(m.events, *e)
	return nil
}

func (m *mockClickLog) InsertBatch(ctx context.Context, events []domain.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("batch insert failed")
	}
	m.events = append(m.events, events...)
	m.batches++
	return nil
}

func (m *mockClickLog) CountBySlug(ctx context.Context, slug string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Slug == slug {
			n++
		}
	}
	return n, nil
}

type mockLinkRepo struct {
	links map[string]domain.RedirectLink
}

func (m *mockLinkRepo) Upsert(ctx context.Context, l *domain.RedirectLink) error {
	if m.links == nil {
		m.links = make(map[string]domain.RedirectLink)
	}
	m.links[l.Slug] = *l
	return nil
}

func (m *mockLinkRepo) GetBySlug(ctx context.Context, slug string) (*domain.RedirectLink, error) {
	l, ok := m.links[slug]
	if !ok {
		return nil, errors.New("not found")
	}
	return &l, nil
}

func (m *mockLinkRepo) List(ctx context.Context) ([]domain.RedirectLink, error) {
	var out []domain.RedirectLink
	for _, l := range m.links {
		out = append(out, l)
	}
	return out, nil
}

func TestRedirectService_Resolve(t *testing.T) {
	links := &mockLinkRepo{links: map[string]domain.RedirectLink{
		"spa-day": {Slug: "spa-day", URL: "https://partner.example/spa", Partner: "acme"},
	}}
	clicks := &mockClickLog{}
	pub := &mockPublisher{}
	svc := usecases.NewRedirectService(links, clicks, pub)

	url, err := svc.Resolve(context.Background(), "spa-day", "https://slashexp.example", "test-agent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://partner.example/spa" {
		t.Errorf("unexpected url %q", url)
	}
	if len(clicks.events) != 1 {
		t.Fatalf("expected 1 logged click, got %d", len(clicks.events))
	}
	if clicks.events[0].Partner != "acme" {
		t.Errorf("expected partner recorded, got %+v", clicks.events[0])
	}
	if pub.clicks != 1 {
		t.Errorf("expected click event published, got %d", pub.clicks)
	}
}

func TestRedirectService_Resolve_UnknownSlug(t *testing.T) {
	svc := usecases.NewRedirectService(&mockLinkRepo{}, &mockClickLog{}, nil)
	if _, err := svc.Resolve(context.Background(), "nope", "", ""); err == nil {
		t.Error("expected error for unknown slug")
	}
}

func TestRedirectService_Resolve_LoggingFailureDoesNotBlock(t *testing.T) {
	links := &mockLinkRepo{links: map[string]domain.RedirectLink{
		"spa-day": {Slug: "spa-day", URL: "https://partner.example/spa"},
	}}
	svc := usecases.NewRedirectService(links, &mockClickLog{failing: true}, nil)

	url, err := svc.Resolve(context.Background(), "spa-day", "", "")
	if err != nil {
		t.Fatalf("redirect should succeed despite logging failure: %v", err)
	}
	if url == "" {
		t.Error("expected target url")
	}
}

func TestClickIngestor_FlushesFullBatch(t *testing.T) {
	clicks := &mockClickLog{}
	ing := usecases.NewClickIngestor(clicks, slog.Default(), 2, time.Minute)
	ctx := context.Background()

	_ = ing.Add(ctx, &domain.ClickEvent{Slug: "a"})
	if len(clicks.events) != 0 {
		t.Fatal("should not flush before batch is full")
	}
	_ = ing.Add(ctx, &domain.ClickEvent{Slug: "b"})
	if len(clicks.events) != 2 || clicks.batches != 1 {
		t.Errorf("expected one flushed batch of 2, got %d events in %d batches", len(clicks.events), clicks.batches)
	}
}

func TestClickIngestor_RetainsBufferOnFailure(t *testing.T) {
	clicks := &mockClickLog{failing: true}
	ing := usecases.NewClickIngestor(clicks, slog.Default(), 10, time.Minute)
	ctx := context.Background()

	_ = ing.Add(ctx, &domain.ClickEvent{Slug: "a"})
	if err := ing.Flush(ctx); err == nil {
		t.Fatal("expected flush error")
	}

	clicks.mu.Lock()
	clicks.failing = false
	clicks.mu.Unlock()

	if err := ing.Flush(ctx); err != nil {
		t.Fatalf("retry flush failed: %v", err)
	}
	if len(clicks.events) != 1 {
		t.Errorf("expected buffered event flushed on retry, got %d", len(clicks.events))
	}
}
