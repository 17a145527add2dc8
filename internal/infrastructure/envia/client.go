package envia

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"mitienda-backend/internal/domain"

	"github.com/goccy/go-json"
)

// Client talks to the carrier-aggregation API (rate quotes and labels).
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// QuoteRates posts a rate request and returns the response's data array.
// A response without a data array yields nil, not an error: the caller owns
// that shape check.
func (c *Client) QuoteRates(ctx context.Context, req *domain.ShipmentRequest) ([]domain.CarrierRate, error) {
	var resp struct {
		Data []domain.CarrierRate `json:"data"`
	}
	if err := c.post(ctx, "/ship/rate", req, &resp, "failed to calculate shipping cost"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GenerateLabel posts a label request and returns the response's data array.
func (c *Client) GenerateLabel(ctx context.Context, req *domain.ShipmentRequest) ([]domain.CarrierShipment, error) {
	var resp struct {
		Data []domain.CarrierShipment `json:"data"`
	}
	if err := c.post(ctx, "/ship/generate", req, &resp, "failed to generate shipment"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}, fallbackMsg string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.NewUpstreamError(fallbackMsg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return domain.NewUpstreamError(fallbackMsg)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewUpstreamError(fallbackMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Prefer the carrier's own message when the error body carries one
		var errBody struct {
			Message string `json:"message"`
		}
		if decErr := json.NewDecoder(resp.Body).Decode(&errBody); decErr == nil && errBody.Message != "" {
			return domain.NewUpstreamError(errBody.Message)
		}
		return domain.NewUpstreamError(fallbackMsg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewUpstreamError("invalid response from carrier service")
	}
	return nil
}
