package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mitienda-backend/internal/domain"

	"github.com/goccy/go-json"
)

// Client talks to the postal-code geocoding service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LookupZipCode fetches the zone records for a postal code. The zones come
// back in upstream order; callers decide how to disambiguate.
func (c *Client) LookupZipCode(ctx context.Context, countryCode, postalCode string) ([]domain.ZipZone, error) {
	url := fmt.Sprintf("%s/zipcode/%s/%s", c.baseURL, countryCode, postalCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to validate address")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to validate address")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewUpstreamError(upstreamMessage(resp.Body, "failed to validate address"))
	}

	var zones []domain.ZipZone
	if err := json.NewDecoder(resp.Body).Decode(&zones); err != nil {
		return nil, domain.NewUpstreamError("invalid response from geocoding service")
	}
	return zones, nil
}

// upstreamMessage extracts the service's own error message when the body
// carries one, falling back to a generic default.
func upstreamMessage(body io.Reader, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}
