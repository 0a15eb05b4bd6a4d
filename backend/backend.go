package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultMaxResponseBytes = 10 << 20
)

// ErrResponseTooLarge is returned when the backend body exceeds the size cap.
var ErrResponseTooLarge = errors.New("backend response too large")

// StatusError reports a backend response with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client represents a client to communicate with the inference service.
type Client struct {
	targetURL        string
	httpClient       *http.Client
	maxResponseBytes int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every backend call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMaxResponseBytes caps how much of a backend body is read.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		c.maxResponseBytes = n
	}
}

// NewBackendClient creates a new Client posting to targetURL. Redirects are
// not followed, so every call is a single HTTP exchange and a 3xx reply is
// reported as a StatusError.
func NewBackendClient(targetURL string, opts ...Option) *Client {
	c := &Client{
		targetURL: targetURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxResponseBytes: defaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TargetURL returns the address requests are sent to.
func (c *Client) TargetURL() string {
	return c.targetURL
}

// Forward sends a request to the target URL and returns the raw response.
// The caller closes the response body.
func (c *Client) Forward(ctx context.Context, method string, headers http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.targetURL, body)
	if err != nil {
		return nil, err
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return c.httpClient.Do(req)
}

// PostJSON posts body as JSON and returns the response body of a 2xx reply.
func (c *Client) PostJSON(ctx context.Context, body []byte) ([]byte, error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	resp, err := c.Forward(ctx, http.MethodPost, headers, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}
	if int64(len(data)) > c.maxResponseBytes {
		return nil, ErrResponseTooLarge
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: data}
	}
	return data, nil
}
