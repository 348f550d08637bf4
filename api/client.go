// Package api is the typed client for the booking marketplace backend. All
// calls go through the transport pipeline, so bearer attachment and session
// expiry handling never appear at a call site.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hostelhub/go-booking-client/credentials"
	"github.com/hostelhub/go-booking-client/transport"
	"github.com/rs/zerolog"
)

// Client issues requests against a single backend base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Use transport.NewClient
// to keep the staged pipeline.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("[api New] parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("[api New] base URL %q needs a scheme and host", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// DefaultStages is the standard pipeline order: correlation ID first, then
// logging so it observes the final request and the handled response, then
// bearer attachment, then expiry handling closest to the wire.
func DefaultStages(store credentials.Store, onExpired func(), logger zerolog.Logger) []transport.Stage {
	return []transport.Stage{
		transport.RequestID(),
		transport.Logging(logger),
		transport.Bearer(store),
		transport.Unauthorized(store, onExpired),
	}
}

// APIError is a non-2xx backend response, carrying the backend's own message
// when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, header http.Header) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[api do] marshal body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return fmt.Errorf("[api do] build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[api do] %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Message = envelope.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("[api do] decode response: %w", err)
	}
	return nil
}

// resolve joins an absolute endpoint path (optionally with a query string)
// onto the base URL, preserving any path prefix the base carries.
func (c *Client) resolve(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.baseURL.String() + path
	}
	resolved := *c.baseURL
	resolved.Path = strings.TrimRight(c.baseURL.Path, "/") + ref.Path
	resolved.RawQuery = ref.RawQuery
	return resolved.String()
}
