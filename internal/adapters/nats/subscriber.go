package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/slashexp/experiences/internal/core/domain"
)

// Subscriber consumes click and order events off NATS JetStream. Workers
// use it directly; there is no port for it since only one side consumes.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeClicks consumes redirector click events off the work queue.
func (s *Subscriber) SubscribeClicks(ctx context.Context, handler func(ctx context.Context, e *domain.ClickEvent) error) error {
	sub, err := s.js.Subscribe("gifts.clicks.>", func(msg *nats.Msg) {
		var e domain.ClickEvent
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &e); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("click-logger"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeOrders consumes order-placed events.
func (s *Subscriber) SubscribeOrders(ctx context.Context, handler func(ctx context.Context, o *domain.Order) error) error {
	sub, err := s.js.Subscribe("gifts.orders.placed", func(msg *nats.Msg) {
		var o domain.Order
		if err := json.Unmarshal(msg.Data, &o); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &o); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("order-notifier"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
