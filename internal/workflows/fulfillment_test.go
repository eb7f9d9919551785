package workflows_test

import (
	"context"
	"errors"
	"testing"

	"go.temporal.io/sdk/testsuite"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/workflows"
)

type mockGateway struct {
	captured   []string
	refunded   []string
	captureErr error
}

func (m *mockGateway) CreateOrder(ctx context.Context, amount int, currency, receipt string) (*domain.PaymentOrder, error) {
	return nil, errors.New("not used in fulfillment")
}

func (m *mockGateway) Capture(ctx context.Context, paymentOrderID string) error {
	if m.captureErr != nil {
		return m.captureErr
	}
	m.captured = append(m.captured, paymentOrderID)
	return nil
}

func (m *mockGateway) Refund(ctx context.Context, paymentOrderID string) error {
	m.refunded = append(m.refunded, paymentOrderID)
	return nil
}

type mockOrders struct {
	statuses map[string]string
}

func (m *mockOrders) Create(ctx context.Context, o *domain.Order) error { return nil }

func (m *mockOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return &domain.Order{
		ID:    id,
		Items: []domain.OrderItem{{Title: "Pottery Class", Quantity: 1}},
	}, nil
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id, status string) error {
	m.statuses[id] = status
	return nil
}

func (m *mockOrders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return nil, nil
}

type mockNotifier struct {
	sent    []string
	sendErr error
}

func (m *mockNotifier) SendGiftEmail(ctx context.Context, recipient, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, recipient)
	return nil
}

func TestGiftFulfillmentWorkflow_HappyPath(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	gateway := &mockGateway{}
	orders := &mockOrders{statuses: map[string]string{}}
	notifier := &mockNotifier{}
	env.RegisterActivity(&workflows.FulfillmentActivities{
		Orders:   orders,
		Payments: gateway,
		Notifier: notifier,
	})

	env.ExecuteWorkflow(workflows.GiftFulfillmentWorkflow, workflows.FulfillmentInput{
		OrderID:        "order-1",
		PaymentOrderID: "pay-1",
		RecipientEmail: "friend@example.com",
		GiftMessage:    "Happy birthday!",
	})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected workflow error: %v", err)
	}
	if len(gateway.captured) != 1 || gateway.captured[0] != "pay-1" {
		t.Errorf("expected payment captured, got %v", gateway.captured)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "friend@example.com" {
		t.Errorf("expected gift email sent, got %v", notifier.sent)
	}
	if orders.statuses["order-1"] != "fulfilled" {
		t.Errorf("expected order fulfilled, got %q", orders.statuses["order-1"])
	}
	if len(gateway.refunded) != 0 {
		t.Errorf("no refund expected, got %v", gateway.refunded)
	}
}

func TestGiftFulfillmentWorkflow_DeliveryFailureRefunds(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	gateway := &mockGateway{}
	orders := &mockOrders{statuses: map[string]string{}}
	notifier := &mockNotifier{sendErr: errors.New("mail service down")}
	env.RegisterActivity(&workflows.FulfillmentActivities{
		Orders:   orders,
		Payments: gateway,
		Notifier: notifier,
	})

	env.ExecuteWorkflow(workflows.GiftFulfillmentWorkflow, workflows.FulfillmentInput{
		OrderID:        "order-2",
		PaymentOrderID: "pay-2",
		RecipientEmail: "friend@example.com",
	})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err == nil {
		t.Fatal("expected workflow error after failed delivery")
	}
	// Compensation: the captured payment is reversed and the order marked.
	if len(gateway.refunded) != 1 || gateway.refunded[0] != "pay-2" {
		t.Errorf("expected refund of pay-2, got %v", gateway.refunded)
	}
	if orders.statuses["order-2"] != "refunded" {
		t.Errorf("expected order refunded, got %q", orders.statuses["order-2"])
	}
}

func TestGiftFulfillmentWorkflow_CaptureFailureMarksFailed(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	gateway := &mockGateway{captureErr: errors.New("card declined")}
	orders := &mockOrders{statuses: map[string]string{}}
	env.RegisterActivity(&workflows.FulfillmentActivities{
		Orders:   orders,
		Payments: gateway,
		Notifier: &mockNotifier{},
	})

	env.ExecuteWorkflow(workflows.GiftFulfillmentWorkflow, workflows.FulfillmentInput{
		OrderID:        "order-3",
		PaymentOrderID: "pay-3",
	})

	if err := env.GetWorkflowError(); err == nil {
		t.Fatal("expected workflow error after failed capture")
	}
	if orders.statuses["order-3"] != "failed" {
		t.Errorf("expected order failed, got %q", orders.statuses["order-3"])
	}
	// Nothing was captured, so nothing to refund.
	if len(gateway.refunded) != 0 {
		t.Errorf("no refund expected, got %v", gateway.refunded)
	}
}
