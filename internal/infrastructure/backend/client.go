package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mitienda-backend/internal/domain"

	"github.com/goccy/go-json"
)

// Client talks to the internal storefront API (auth + product catalog).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the standard {success, message, data} wrapper the internal API
// puts around every response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "login failed")
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "registration failed")
}

func (c *Client) authenticate(ctx context.Context, path string, creds map[string]string, fallbackMsg string) (*domain.AuthResult, error) {
	env, err := c.do(ctx, http.MethodPost, path, creds, false, fallbackMsg)
	if err != nil {
		return nil, err
	}

	var result domain.AuthResult
	if err := json.Unmarshal(env.Data, &result); err != nil || result.Token == "" {
		return nil, domain.NewUpstreamError(fallbackMsg)
	}
	return &result, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/products", nil, true, "failed to load products")
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, domain.NewUpstreamError("failed to load products")
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/products/"+id, nil, true, "failed to load product")
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(env.Data, &product); err != nil || product.ID == "" {
		return nil, domain.NewUpstreamError("product not found")
	}
	return &product, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}, withAPIKey bool, fallbackMsg string) (*envelope, error) {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, domain.NewUpstreamError(fallbackMsg)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, domain.NewUpstreamError(fallbackMsg)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if withAPIKey && c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError(fallbackMsg)
	}
	defer resp.Body.Close()

	var env envelope
	if decErr := json.NewDecoder(resp.Body).Decode(&env); decErr != nil {
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.NewUpstreamError("not found")
		}
		return nil, domain.NewUpstreamError(fallbackMsg)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("%s (status %d)", fallbackMsg, resp.StatusCode)
		}
		return nil, domain.NewUpstreamError(msg)
	}
	return &env, nil
}
