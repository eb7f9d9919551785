package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client implements ports.NotificationService against a transactional
// mail API with a bearer API key.
type Client struct {
	baseURL string
	apiKey  string
	from    string
	http    *http.Client
}

// New creates a new mail client.
func New(baseURL, apiKey, from string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// SendGiftEmail delivers one gift message to the recipient.
func (c *Client) SendGiftEmail(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}

	data, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      recipient,
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
