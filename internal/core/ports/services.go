package ports

import (
	"context"
	"errors"

	"github.com/slashexp/experiences/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishClick(ctx context.Context, e *domain.ClickEvent) error
	PublishOrderPlaced(ctx context.Context, o *domain.Order) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// ErrCacheMiss reports that a key is not in the cache. Callers treat
// it as a normal miss, not a backend failure.
var ErrCacheMiss = errors.New("cache miss")

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// Geocoder translates free-text addresses to coordinates and back.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]domain.GeocodeResult, error)
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// PaymentGateway creates and settles payment orders with the external
// payment provider. Amounts are integer currency units.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int, currency, receipt string) (*domain.PaymentOrder, error)
	Capture(ctx context.Context, paymentOrderID string) error
	Refund(ctx context.Context, paymentOrderID string) error
}

// GiftRecommender asks the recommendation service for gift suggestions.
type GiftRecommender interface {
	Recommend(ctx context.Context, session *domain.PersonalizerSession) ([]domain.GiftSuggestion, error)
}

// NotificationService sends notifications (email, push).
type NotificationService interface {
	SendGiftEmail(ctx context.Context, recipient, subject, body string) error
}

// WorkflowStarter kicks off the asynchronous fulfillment of a paid order.
type WorkflowStarter interface {
	StartFulfillment(ctx context.Context, order *domain.Order) error
}
