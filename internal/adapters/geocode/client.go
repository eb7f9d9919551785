package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/slashexp/experiences/internal/core/domain"
)

// Client implements ports.Geocoder against a Nominatim-compatible HTTP
// API. Coordinates come back as strings on the wire and are passed
// through untouched; parsing happens at the ranking boundary.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New creates a new geocoding client.
func New(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode geocoder response: %w", err)
	}
	return nil
}

// Search forward-geocodes a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.GeocodeResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", strconv.Itoa(limit))

	var raw []searchResult
	if err := c.get(ctx, "/search", q, &raw); err != nil {
		return nil, err
	}

	results := make([]domain.GeocodeResult, 0, len(raw))
	for _, r := range raw {
		results = append(results, domain.GeocodeResult{
			DisplayName: r.DisplayName,
			Lat:         r.Lat,
			Lon:         r.Lon,
		})
	}
	return results, nil
}

// Reverse resolves coordinates to a display address.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "jsonv2")

	var raw searchResult
	if err := c.get(ctx, "/reverse", q, &raw); err != nil {
		return "", err
	}
	if raw.DisplayName == "" {
		return "", fmt.Errorf("no address at %f,%f", lat, lon)
	}
	return raw.DisplayName, nil
}
