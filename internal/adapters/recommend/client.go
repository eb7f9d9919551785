package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/slashexp/experiences/internal/core/domain"
)

// Client implements ports.GiftRecommender against the recommendation
// service. Callers treat failures as soft: the personalizer falls back
// to catalog matching when this client errors.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a new recommender client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 8 * time.Second},
	}
}

type recommendRequest struct {
	Occasion  string   `json:"occasion"`
	Recipient string   `json:"recipient"`
	Interests []string `json:"interests"`
	BudgetMin int      `json:"budget_min"`
	BudgetMax int      `json:"budget_max"`
}

type recommendResponse struct {
	Suggestions []domain.GiftSuggestion `json:"suggestions"`
}

// Recommend asks the remote service for gift suggestions.
func (c *Client) Recommend(ctx context.Context, session *domain.PersonalizerSession) ([]domain.GiftSuggestion, error) {
	body, err := json.Marshal(recommendRequest{
		Occasion:  session.Occasion,
		Recipient: session.Recipient,
		Interests: session.Interests,
		BudgetMin: session.BudgetMin,
		BudgetMax: session.BudgetMax,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommender request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommender status %d", resp.StatusCode)
	}

	var decoded recommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode recommender response: %w", err)
	}
	return decoded.Suggestions, nil
}
