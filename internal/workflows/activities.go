package workflows

import (
	"context"
	"fmt"
	"log"

	"github.com/slashexp/experiences/internal/core/ports"
)

// FulfillmentActivities holds the activity implementations for the gift
// fulfillment workflow.
type FulfillmentActivities struct {
	Orders   ports.OrderRepository
	Payments ports.PaymentGateway
	Notifier ports.NotificationService
}

// CapturePayment settles the gateway order created at checkout.
func (a *FulfillmentActivities) CapturePayment(ctx context.Context, paymentOrderID string) error {
	if err := a.Payments.Capture(ctx, paymentOrderID); err != nil {
		return fmt.Errorf("capture payment %s: %w", paymentOrderID, err)
	}
	return nil
}

// RefundPayment reverses a captured payment (saga compensation / rollback).
func (a *FulfillmentActivities) RefundPayment(ctx context.Context, paymentOrderID string) error {
	if err := a.Payments.Refund(ctx, paymentOrderID); err != nil {
		return fmt.Errorf("refund payment %s: %w", paymentOrderID, err)
	}
	log.Printf("Payment %s refunded (saga compensation)", paymentOrderID)
	return nil
}

// MarkOrderStatus transitions the order record.
func (a *FulfillmentActivities) MarkOrderStatus(ctx context.Context, orderID, status string) error {
	if err := a.Orders.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("mark order %s %s: %w", orderID, status, err)
	}
	return nil
}

// SendGiftEmail delivers the gift to the recipient.
func (a *FulfillmentActivities) SendGiftEmail(ctx context.Context, orderID, recipientEmail, giftMessage string) error {
	if a.Notifier == nil {
		log.Printf("EMAIL (no notifier configured) order=%s recipient=%s", orderID, recipientEmail)
		return nil
	}
	order, err := a.Orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", orderID, err)
	}

	subject := "You've been gifted an experience!"
	body := giftMessage
	for _, item := range order.Items {
		body += fmt.Sprintf("\n- %s x%d", item.Title, item.Quantity)
	}
	return a.Notifier.SendGiftEmail(ctx, recipientEmail, subject, body)
}
