package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/usecases"
)

// --- Mocks for checkout collaborators ---

type mockOrderRepo struct {
	created []*domain.Order
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	o.ID = "order-1"
	m.created = append(m.created, o)
	return nil
}
func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return nil, errors.New("not found")
}
func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (m *mockOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return nil, nil
}

type mockPaymentGateway struct {
	failCreate bool
}

func (m *mockPaymentGateway) CreateOrder(ctx context.Context, amount int, currency, receipt string) (*domain.PaymentOrder, error) {
	if m.failCreate {
		return nil, errors.New("gateway unavailable")
	}
	return &domain.PaymentOrder{ID: "pay-1", Amount: amount, Currency: currency, Status: "created"}, nil
}
func (m *mockPaymentGateway) Capture(ctx context.Context, paymentOrderID string) error { return nil }
func (m *mockPaymentGateway) Refund(ctx context.Context, paymentOrderID string) error  { return nil }

type mockPublisher struct {
	orders int
	clicks int
}

func (m *mockPublisher) PublishClick(ctx context.Context, e *domain.ClickEvent) error {
	m.clicks++
	return nil
}
func (m *mockPublisher) PublishOrderPlaced(ctx context.Context, o *domain.Order) error {
	m.orders++
	return nil
}
func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return nil }

type mockWorkflowStarter struct {
	started []*domain.Order
}

func (m *mockWorkflowStarter) StartFulfillment(ctx context.Context, order *domain.Order) error {
	m.started = append(m.started, order)
	return nil
}

func cartFixture() (*usecases.CartService, *mockPrefStore, *mockOrderRepo, *mockPublisher, *mockWorkflowStarter) {
	repo := &mockExperienceRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Experience, error) {
			if id == "gone" {
				return nil, errors.New("not found")
			}
			return &domain.Experience{ID: id, Title: "Spa Day", Price: 1200}, nil
		},
	}
	prefs := newMockPrefStore()
	orders := &mockOrderRepo{}
	pub := &mockPublisher{}
	wf := &mockWorkflowStarter{}
	svc := usecases.NewCartService(prefs, repo, orders, &mockPaymentGateway{}, pub, wf, "INR")
	return svc, prefs, orders, pub, wf
}

// --- Tests ---

func TestCartService_AddAndGet(t *testing.T) {
	svc, _, _, _, _ := cartFixture()
	ctx := context.Background()

	if err := svc.Add(ctx, "u1", "exp-1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Add(ctx, "u1", "exp-1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", cart.Items[0].Quantity)
	}
	if cart.Subtotal != 3600 {
		t.Errorf("expected subtotal 3600, got %d", cart.Subtotal)
	}
}

func TestCartService_Add_UnknownExperience(t *testing.T) {
	svc, _, _, _, _ := cartFixture()
	if err := svc.Add(context.Background(), "u1", "gone", 1); err == nil {
		t.Error("expected error adding unknown experience")
	}
}

func TestCartService_Remove(t *testing.T) {
	svc, _, _, _, _ := cartFixture()
	ctx := context.Background()

	_ = svc.Add(ctx, "u1", "exp-1", 1)
	_ = svc.Add(ctx, "u1", "exp-2", 1)
	if err := svc.Remove(ctx, "u1", "exp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, _ := svc.Get(ctx, "u1")
	if len(cart.Items) != 1 || cart.Items[0].Experience.ID != "exp-2" {
		t.Errorf("expected only exp-2 left, got %+v", cart.Items)
	}
}

func TestCartService_Checkout_EmptyCart(t *testing.T) {
	svc, _, _, _, _ := cartFixture()
	if _, err := svc.Checkout(context.Background(), "u1", "", ""); err == nil {
		t.Error("expected error for empty cart")
	}
}

func TestCartService_Checkout_Success(t *testing.T) {
	svc, prefs, orders, pub, wf := cartFixture()
	ctx := context.Background()

	_ = svc.Add(ctx, "u1", "exp-1", 2)

	order, err := svc.Checkout(ctx, "u1", "Happy birthday!", "friend@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.PaymentOrderID != "pay-1" {
		t.Errorf("expected payment order id, got %q", order.PaymentOrderID)
	}
	if order.AmountTotal != 2400 {
		t.Errorf("expected total 2400, got %d", order.AmountTotal)
	}
	if len(orders.created) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(orders.created))
	}
	if pub.orders != 1 {
		t.Errorf("expected order event published, got %d", pub.orders)
	}
	if len(wf.started) != 1 {
		t.Errorf("expected fulfillment started, got %d", len(wf.started))
	}
	if _, ok := prefs.data["u1/"+usecases.PrefCart]; ok {
		t.Error("expected cart cleared after checkout")
	}
}

func TestCartService_Checkout_GatewayFailure(t *testing.T) {
	repo := &mockExperienceRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Experience, error) {
			return &domain.Experience{ID: id, Price: 100}, nil
		},
	}
	prefs := newMockPrefStore()
	orders := &mockOrderRepo{}
	svc := usecases.NewCartService(prefs, repo, orders, &mockPaymentGateway{failCreate: true}, nil, nil, "INR")

	ctx := context.Background()
	_ = svc.Add(ctx, "u1", "exp-1", 1)

	if _, err := svc.Checkout(ctx, "u1", "", ""); err == nil {
		t.Fatal("expected error when gateway fails")
	}
	if len(orders.created) != 0 {
		t.Error("no order should be persisted on gateway failure")
	}
	if _, ok := prefs.data["u1/"+usecases.PrefCart]; !ok {
		t.Error("cart should survive a failed checkout")
	}
}
