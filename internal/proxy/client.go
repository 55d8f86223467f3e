package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

const maxDatasetBytes = 64 << 20

// Client fetches the dataset from a running proxy
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates a proxy client for baseURL
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy: invalid base url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// Fetch downloads the whole dataset keeping its key order
func (c *Client) Fetch(ctx context.Context) (*domain.AllSOCResults, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+DatasetRoute, nil)
	if err != nil {
		return nil, fmt.Errorf("proxy: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResultsUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("proxy: fetch: %w", ErrResultsNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d", ErrResultsUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrResultsUnavailable, err)
	}

	results, err := domain.ParseAllSOCResults(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResultsUnavailable, err)
	}
	return results, nil
}

// Load lets the client act as an aggregation loader
func (c *Client) Load(ctx context.Context) (*domain.AllSOCResults, error) {
	return c.Fetch(ctx)
}

var _ Source = (*Client)(nil)
