package recurly

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// APIVersion pins the provider API contract this adapter speaks.
const APIVersion = "v2019-10-10"

const defaultHost = "https://v3.recurly.com"

// Endpoint is a write target under the site path.
type Endpoint string

const (
	EndpointPurchases     Endpoint = "purchases"
	EndpointSubscriptions Endpoint = "subscriptions"
)

// APIError is a non-2xx provider response. It propagates unchanged to the
// caller; this layer never retries.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("recurly: unexpected status %d: %s", e.Status, e.Body)
}

// Client executes the two HTTP calls the adapter needs: the purchase write
// and the invoice-list read. Retry, backoff, and circuit breaking live in the
// layers around it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
}

// NewClient builds a transport client for one site. Host is overridable for
// tests and non-production endpoints.
func NewClient(subdomain, apiKey, host string, logger zerolog.Logger) *Client {
	if host == "" {
		host = defaultHost
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("%s/sites/subdomain-%s/", host, subdomain),
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.apiKey)))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", fmt.Sprintf("application/vnd.recurly.%s+json", APIVersion))
	req.Header.Set("X-Api-Version", APIVersion)
}

// CreatePurchase POSTs the payload to the purchases or subscriptions endpoint
// and returns the decoded charge response alongside the raw body.
func (c *Client) CreatePurchase(ctx context.Context, endpoint Endpoint, payload *PurchasePayload) (*ChargeResponse, json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encode purchase payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+string(endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	c.setHeaders(req)

	raw, err := c.do(req)
	if err != nil {
		return nil, nil, err
	}

	var resp ChargeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return &resp, raw, nil
}

// ListInvoices GETs the site's invoices, most-recent-first.
func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"invoices", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var page invoicesPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode invoices response: %w", err)
	}
	return page.Data, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Gateway request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
