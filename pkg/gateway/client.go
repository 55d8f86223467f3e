package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

const (
	defaultBaseURL = "http://127.0.0.1:8001"

	healthPath  = "/api/v1/health"
	analyzePath = "/api/v1/jobs/analyze"
)

// NewClient instantiates a backend client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: invalid base url %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the normalized backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckHealth calls the health endpoint. Any failure is a *NetworkError.
func (c *Client) CheckHealth(ctx context.Context) (Health, error) {
	const op = "health check"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(healthPath), nil)
	if err != nil {
		return Health{}, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	var health Health
	if err := c.do(req, op, &health); err != nil {
		return Health{}, err
	}

	return health, nil
}

// AnalyzeJob posts a search to the backend. It never fails: transport
// errors, non-2xx statuses and undecodable bodies come back as an
// unsuccessful response with code NETWORK_ERROR.
func (c *Client) AnalyzeJob(ctx context.Context, request AnalyzeRequest) AnalyzeResponse {
	const op = "analyze job"

	body, err := json.Marshal(request)
	if err != nil {
		return networkFailure(&NetworkError{Op: op, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(analyzePath), bytes.NewReader(body))
	if err != nil {
		return networkFailure(&NetworkError{Op: op, Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var payload AnalyzeResponse
	if err := c.do(req, op, &payload); err != nil {
		return networkFailure(err)
	}

	return payload
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

func (c *Client) endpoint(p string) string {
	u, _ := url.Parse(c.baseURL)
	u.Path = path.Join(u.Path, p)
	return u.String()
}

func networkFailure(err error) AnalyzeResponse {
	return AnalyzeResponse{
		Success: false,
		Error: &ErrorPayload{
			Code:    CodeNetworkError,
			Message: fmt.Sprintf("Unable to reach the analysis service (%v). Please try again.", err),
		},
	}
}
