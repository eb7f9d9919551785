package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
)

// CartService manages the preference-store cart and runs checkout.
// Cart reads and writes are read-then-write with last-writer-wins, which
// matches the storefront's historical local-storage semantics.
type CartService struct {
	prefs       ports.PreferenceStore
	experiences ports.ExperienceRepository
	orders      ports.OrderRepository
	payments    ports.PaymentGateway
	publisher   ports.EventPublisher
	workflows   ports.WorkflowStarter
	currency    string
}

// NewCartService creates a new CartService.
func NewCartService(
	prefs ports.PreferenceStore,
	experiences ports.ExperienceRepository,
	orders ports.OrderRepository,
	payments ports.PaymentGateway,
	publisher ports.EventPublisher,
	workflows ports.WorkflowStarter,
	currency string,
) *CartService {
	if currency == "" {
		currency = "INR"
	}
	return &CartService{
		prefs:       prefs,
		experiences: experiences,
		orders:      orders,
		payments:    payments,
		publisher:   publisher,
		workflows:   workflows,
		currency:    currency,
	}
}

func (s *CartService) load(ctx context.Context, userID string) []domain.CartItem {
	raw, err := s.prefs.Get(ctx, userID, PrefCart)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// Malformed cart is a stale preference, not an error.
		return nil
	}
	return items
}

func (s *CartService) store(ctx context.Context, userID string, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.prefs.Set(ctx, userID, PrefCart, data)
}

// Get returns the cart priced against the current catalog. Items whose
// experience no longer exists are silently dropped.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.CartSummary, error) {
	items := s.load(ctx, userID)

	summary := &domain.CartSummary{Currency: s.currency}
	for _, item := range items {
		e, err := s.experiences.GetByID(ctx, item.ExperienceID)
		if err != nil {
			continue
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		summary.Items = append(summary.Items, domain.PricedCartItem{
			Experience: *e,
			Quantity:   qty,
			LineTotal:  e.Price * qty,
		})
		summary.Subtotal += e.Price * qty
	}
	return summary, nil
}

// Add puts an experience in the cart, bumping quantity if already present.
func (s *CartService) Add(ctx context.Context, userID, experienceID string, quantity int) error {
	if experienceID == "" {
		return fmt.Errorf("experience id is required")
	}
	if quantity <= 0 {
		quantity = 1
	}

	// Validate against the catalog before storing.
	if _, err := s.experiences.GetByID(ctx, experienceID); err != nil {
		return fmt.Errorf("experience %s: %w", experienceID, err)
	}

	items := s.load(ctx, userID)
	for i := range items {
		if items[i].ExperienceID == experienceID {
			items[i].Quantity += quantity
			return s.store(ctx, userID, items)
		}
	}
	items = append(items, domain.CartItem{ExperienceID: experienceID, Quantity: quantity})
	return s.store(ctx, userID, items)
}

// Remove deletes an experience from the cart. Removing an absent item is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, experienceID string) error {
	items := s.load(ctx, userID)
	kept := items[:0]
	for _, item := range items {
		if item.ExperienceID != experienceID {
			kept = append(kept, item)
		}
	}
	return s.store(ctx, userID, kept)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.prefs.Delete(ctx, userID, PrefCart)
}

// Checkout prices the cart, creates an order row and a gateway payment
// order, publishes the order event, and hands the order to the fulfillment
// workflow. The cart is cleared only after the order is persisted.
func (s *CartService) Checkout(ctx context.Context, userID, giftMessage, recipientEmail string) (*domain.Order, error) {
	summary, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	order := &domain.Order{
		UserID:         userID,
		AmountTotal:    summary.Subtotal,
		Currency:       summary.Currency,
		Status:         "pending",
		GiftMessage:    giftMessage,
		RecipientEmail: recipientEmail,
		CreatedAt:      time.Now(),
	}
	for _, item := range summary.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ExperienceID: item.Experience.ID,
			Title:        item.Experience.Title,
			UnitPrice:    item.Experience.Price,
			Quantity:     item.Quantity,
		})
	}

	pay, err := s.payments.CreateOrder(ctx, order.AmountTotal, order.Currency, "gift-"+userID)
	if err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}
	order.PaymentOrderID = pay.ID

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.Clear(ctx, userID); err != nil {
		// Order exists; a stale cart is recoverable.
		_ = err
	}

	// Best-effort: fulfillment retries payment capture, so losing the
	// event or workflow start is visible in the order status, not fatal.
	if s.publisher != nil {
		_ = s.publisher.PublishOrderPlaced(ctx, order)
	}
	if s.workflows != nil {
		_ = s.workflows.StartFulfillment(ctx, order)
	}

	return order, nil
}
