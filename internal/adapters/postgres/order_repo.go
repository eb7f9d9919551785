package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/slashexp/experiences/internal/core/domain"
)

// OrderRepo implements ports.OrderRepository with pgx. Line items are
// stored as a JSONB snapshot since they are frozen at checkout and never
// queried individually.
type OrderRepo struct {
	db *DB
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserts a new order and fills in the generated ID.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO orders (user_id, items, amount_total, currency, status,
		                    payment_order_id, gift_message, recipient_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, o.UserID, items, o.AmountTotal, o.Currency, o.Status,
		o.PaymentOrderID, o.GiftMessage, o.RecipientEmail).Scan(&o.ID, &o.CreatedAt)
}

// GetByID returns an order by UUID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	var items []byte
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, items, amount_total, currency, status,
		       COALESCE(payment_order_id, ''), COALESCE(gift_message, ''),
		       COALESCE(recipient_email, ''), created_at
		FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &items, &o.AmountTotal, &o.Currency, &o.Status,
		&o.PaymentOrderID, &o.GiftMessage, &o.RecipientEmail, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &o, nil
}

// UpdateStatus transitions an order to a new status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, items, amount_total, currency, status,
		       COALESCE(payment_order_id, ''), COALESCE(gift_message, ''),
		       COALESCE(recipient_email, ''), created_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var items []byte
		if err := rows.Scan(&o.ID, &o.UserID, &items, &o.AmountTotal, &o.Currency, &o.Status,
			&o.PaymentOrderID, &o.GiftMessage, &o.RecipientEmail, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
