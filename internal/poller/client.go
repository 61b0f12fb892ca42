package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// Response holds the result of an HTTP request made by [Client].
type Response struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error is set when no complete response was received. A non-2xx status
	// is not an error at this level.
	Error error
}

// Client is an HTTP client wrapper for polling a sensor endpoint.
//
// Client has no global timeout. A per-request timeout is applied through the
// context when one is configured.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a polling [Client] with the platform transport. Native
// builds get a small keep-alive pool; browser builds use the fetch-backed
// default transport.
func NewClient() *Client {
	return NewClientWithTransport(nil)
}

// NewClientWithTransport creates a [Client] that sends requests through rt.
// A nil rt uses the same transport as [NewClient].
func NewClientWithTransport(rt http.RoundTripper) *Client {
	if rt == nil {
		rt = newTransport()
	}
	return &Client{httpClient: &http.Client{Transport: rt}}
}

// Fetch performs a GET request and returns a structured [Response].
//
// A timeout of zero or less means the request is bounded only by ctx.
// Fetch always returns a Response; errors are captured in the Error field.
func (c *Client) Fetch(ctx context.Context, url string, headers map[string]string, timeout time.Duration) Response {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close closes idle connections. The client remains usable afterwards.
// Safe to call multiple times and on a nil receiver.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
