package temporaladapter

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/workflows"
)

// Starter implements ports.WorkflowStarter with a Temporal client.
type Starter struct {
	client    client.Client
	taskQueue string
}

// NewStarter connects to the Temporal frontend.
func NewStarter(hostPort, namespace, taskQueue string) (*Starter, error) {
	c, err := client.Dial(client.Options{
		HostPort:  hostPort,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("temporal dial: %w", err)
	}
	return &Starter{client: c, taskQueue: taskQueue}, nil
}

// StartFulfillment launches the gift fulfillment workflow for an order.
// The workflow ID is derived from the order so retries are idempotent.
func (s *Starter) StartFulfillment(ctx context.Context, order *domain.Order) error {
	opts := client.StartWorkflowOptions{
		ID:        "fulfillment-" + order.ID,
		TaskQueue: s.taskQueue,
	}
	input := workflows.FulfillmentInput{
		OrderID:        order.ID,
		PaymentOrderID: order.PaymentOrderID,
		RecipientEmail: order.RecipientEmail,
		GiftMessage:    order.GiftMessage,
	}
	_, err := s.client.ExecuteWorkflow(ctx, opts, workflows.GiftFulfillmentWorkflow, input)
	if err != nil {
		return fmt.Errorf("start fulfillment for order %s: %w", order.ID, err)
	}
	return nil
}

// Close releases the Temporal client.
func (s *Starter) Close() {
	s.client.Close()
}
