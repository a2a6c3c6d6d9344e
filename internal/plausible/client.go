// Package plausible implements the client for the Plausible Analytics HTTP
// API: site listing, stats queries and summary formatting.
package plausible

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/j-veylop/pstats/internal/logger"
	"github.com/j-veylop/pstats/internal/models"
)

const (
	sitesPath = "/api/v1/sites"
	queryPath = "/api/v2/query"

	// listSitesLimit caps the number of sites returned by a listing call.
	listSitesLimit = 100

	defaultTimeout   = 30 * time.Second
	defaultPrecision = 2
)

// Config holds the immutable client settings.
type Config struct {
	// BaseURL of the Plausible instance, without a trailing slash.
	BaseURL string
	// APIKey is sent as a bearer credential.
	APIKey string
	// Timeout applies per HTTP call. Zero means 30s.
	Timeout time.Duration
	// Precision is the decimal precision for ratio metrics in formatted
	// summaries. Negative means the default of 2.
	Precision int
}

// Client talks to one Plausible instance. It is stateless beyond the
// credentials and safe for sequential reuse across calls.
type Client struct {
	baseURL   string
	apiKey    string
	precision int

	// httpClient is swappable in tests.
	httpClient *http.Client
}

// New creates a client from the given settings.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	precision := cfg.Precision
	if precision < 0 {
		precision = defaultPrecision
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		precision:  precision,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured instance URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTransport swaps the underlying HTTP transport, keeping the timeout.
// Tests use it to stub the API.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient = &http.Client{Transport: rt, Timeout: c.httpClient.Timeout}
}

// do performs one authenticated request and maps failures onto the error
// taxonomy. The returned body is only valid for 2xx responses.
func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Message: errorMessage(body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return body, nil
}

// errorMessage extracts the API's own error text from a response body,
// falling back to the raw body.
func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}

// ListSites returns every site the API key can access, in the order the API
// reports them.
func (c *Client) ListSites(ctx context.Context) ([]models.Site, error) {
	url := fmt.Sprintf("%s%s?limit=%d", c.baseURL, sitesPath, listSitesLimit)

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	var sites []models.Site
	gjson.GetBytes(body, "sites").ForEach(func(_, site gjson.Result) bool {
		sites = append(sites, models.Site{
			Domain:   site.Get("domain").String(),
			Timezone: site.Get("timezone").String(),
		})
		return true
	})

	return sites, nil
}
