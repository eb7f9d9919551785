package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// FulfillmentInput is the input for the gift fulfillment workflow.
type FulfillmentInput struct {
	OrderID        string
	PaymentOrderID string
	RecipientEmail string
	GiftMessage    string
}

// GiftFulfillmentWorkflow captures payment, marks the order paid, and
// emails the gift to the recipient. If the email fails after capture,
// the payment is refunded and the order marked failed (saga compensation).
func GiftFulfillmentWorkflow(ctx workflow.Context, input FulfillmentInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting gift fulfillment", "orderID", input.OrderID)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Capture the payment
	err := workflow.ExecuteActivity(ctx, "CapturePayment", input.PaymentOrderID).Get(ctx, nil)
	if err != nil {
		_ = workflow.ExecuteActivity(ctx, "MarkOrderStatus", input.OrderID, "failed").Get(ctx, nil)
		return err
	}

	// Step 2: Mark the order paid
	err = workflow.ExecuteActivity(ctx, "MarkOrderStatus", input.OrderID, "paid").Get(ctx, nil)
	if err != nil {
		return err
	}

	// Step 3: Deliver the gift email
	err = workflow.ExecuteActivity(ctx, "SendGiftEmail", input.OrderID, input.RecipientEmail, input.GiftMessage).Get(ctx, nil)
	if err != nil {
		logger.Warn("gift delivery failed, refunding", "error", err)
		// Compensate: refund and mark the order
		_ = workflow.ExecuteActivity(ctx, "RefundPayment", input.PaymentOrderID).Get(ctx, nil)
		_ = workflow.ExecuteActivity(ctx, "MarkOrderStatus", input.OrderID, "refunded").Get(ctx, nil)
		return err
	}

	err = workflow.ExecuteActivity(ctx, "MarkOrderStatus", input.OrderID, "fulfilled").Get(ctx, nil)
	if err != nil {
		return err
	}

	logger.Info("Gift fulfilled", "orderID", input.OrderID)
	return nil
}
