// Package apiclient wraps all outbound calls to the practice backend API.
// It attaches the caller's bearer credentials and JSON headers, propagates
// request IDs, and maps authentication failures to ErrUnauthenticated so
// callers can abandon the operation and send the browser to the login page.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnauthenticated is returned when the backend rejects the session.
// Callers must treat it as "request aborted, do not proceed".
var ErrUnauthenticated = errors.New("backend session unauthenticated")

// APIError carries an application-level failure from the backend. Message
// holds the server-provided error text when the response body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
}

// UserMessage returns the text to surface in a notification banner.
func (e *APIError) UserMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

type ridKey struct{}

// WithRequestID tags the context with the inbound request ID so backend
// calls can be correlated across services.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ridKey{}, rid)
}

func requestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(ridKey{}).(string)
	return rid
}

// Client issues authenticated JSON requests against the backend API.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger zerolog.Logger
}

// New builds a client for the given base URL. The base URL is expected to
// include the API prefix, e.g. "https://backend.example.com/api".
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	return &Client{
		base:   u,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// Get fetches path and decodes the JSON response into out (skipped if nil).
func (c *Client) Get(ctx context.Context, token, path string, query url.Values, out interface{}) error {
	return c.do(ctx, token, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the response into out (skipped if nil).
func (c *Client) Post(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, token, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the response into out (skipped if nil).
func (c *Client) Put(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, token, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE. Response bodies are discarded.
func (c *Client) Delete(ctx context.Context, token, path string) error {
	return c.do(ctx, token, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out interface{}) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := requestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the backend's {"error": "..."} field, if present.
// Failure bodies are small; reads are capped at 64KB.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
