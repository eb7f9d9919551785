package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/slashexp/experiences/internal/core/domain"
)

// Client implements ports.PaymentGateway against a Razorpay-style orders
// API with basic-auth key/secret credentials.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

// New creates a new payment gateway client.
func New(baseURL, keyID, keySecret string) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway status %d: %s", resp.StatusCode, msg)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode gateway response: %w", err)
		}
	}
	return nil
}

type orderRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder registers a gateway-side order before payment capture.
// Amount is in the smallest currency unit.
func (c *Client) CreateOrder(ctx context.Context, amount int, currency, receipt string) (*domain.PaymentOrder, error) {
	var resp orderResponse
	err := c.post(ctx, "/v1/orders", orderRequest{Amount: amount, Currency: currency, Receipt: receipt}, &resp)
	if err != nil {
		return nil, err
	}
	return &domain.PaymentOrder{
		ID:       resp.ID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
		Status:   resp.Status,
	}, nil
}

// Capture settles an authorized payment order.
func (c *Client) Capture(ctx context.Context, paymentOrderID string) error {
	return c.post(ctx, "/v1/orders/"+paymentOrderID+"/capture", nil, nil)
}

// Refund reverses a captured payment order.
func (c *Client) Refund(ctx context.Context, paymentOrderID string) error {
	return c.post(ctx, "/v1/orders/"+paymentOrderID+"/refund", nil, nil)
}
