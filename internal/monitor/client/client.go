// Package client is a thin HTTP client for a running chitai-qa monitor.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// ErrNoRun is returned by LatestRun when the monitor has not finished a run.
var ErrNoRun = errors.New("monitor has not completed a run yet")

// StatusError is returned for responses with a 4xx or 5xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("monitor error (HTTP %d): %s", e.StatusCode, e.Body)
}

// Client talks to the monitor's health and run endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the monitor at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status summarizes a monitor.
type Status struct {
	Healthy bool             `json:"healthy"`
	Ready   bool             `json:"ready"`
	LastRun *domain.SmokeRun `json:"last_run,omitempty"`
}

// Healthz returns nil when the monitor process is up.
func (c *Client) Healthz(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}

// Readyz reports whether the monitor's dependencies are reachable. A 503
// is not an error.
func (c *Client) Readyz(ctx context.Context) (bool, error) {
	err := c.get(ctx, "/readyz", nil)
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusServiceUnavailable {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LatestRun returns the most recent completed run.
func (c *Client) LatestRun(ctx context.Context) (*domain.SmokeRun, error) {
	var run domain.SmokeRun
	err := c.get(ctx, "/runs/latest", &run)
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return nil, ErrNoRun
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Status collects health, readiness and the latest run. It fails only when
// the monitor cannot be reached or is unhealthy.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	if err := c.Healthz(ctx); err != nil {
		return nil, err
	}
	st := &Status{Healthy: true}

	ready, err := c.Readyz(ctx)
	if err != nil {
		return nil, err
	}
	st.Ready = ready

	run, err := c.LatestRun(ctx)
	switch {
	case errors.Is(err, ErrNoRun):
	case err != nil:
		return nil, err
	default:
		st.LastRun = run
	}

	return st, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return fmt.Errorf("monitor not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if dst != nil && len(body) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
