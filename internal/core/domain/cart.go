package domain

import "time"

// CartItem is one experience in a user's cart. The cart lives in the
// preference store as a JSON array; last writer wins, no transactions.
type CartItem struct {
	ExperienceID string `json:"experience_id"`
	Quantity     int    `json:"quantity"`
}

// CartSummary is a cart priced against the current catalog.
type CartSummary struct {
	Items    []PricedCartItem `json:"items"`
	Subtotal int              `json:"subtotal"`
	Currency string           `json:"currency"`
}

// PricedCartItem joins a cart item with its catalog listing.
type PricedCartItem struct {
	Experience Experience `json:"experience"`
	Quantity   int        `json:"quantity"`
	LineTotal  int        `json:"line_total"`
}

// Order records a completed checkout.
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Items          []OrderItem `json:"items"`
	AmountTotal    int         `json:"amount_total"`
	Currency       string      `json:"currency"`
	Status         string      `json:"status"` // pending, paid, fulfilled, refunded, failed
	PaymentOrderID string      `json:"payment_order_id,omitempty"`
	GiftMessage    string      `json:"gift_message,omitempty"`
	RecipientEmail string      `json:"recipient_email,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// OrderItem is a line item frozen at checkout time.
type OrderItem struct {
	ExperienceID string `json:"experience_id"`
	Title        string `json:"title"`
	UnitPrice    int    `json:"unit_price"`
	Quantity     int    `json:"quantity"`
}

// PaymentOrder is the gateway-side order created before capture.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}
