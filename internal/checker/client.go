package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

// Client is the production Fetcher: one GET per call, per-call timeout, body
// read capped, no retries.
type Client struct {
	HTTPClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a client with a default transport. Timeouts are applied
// per call, not on the underlying http.Client.
func NewClient() *Client {
	return &Client{HTTPClient: &http.Client{}}
}

// Get issues the request and measures elapsed time to a fully read body.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(consts.BodyCaptureLimitBytes)))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Elapsed:    time.Since(start),
		Body:       body,
	}, nil
}
