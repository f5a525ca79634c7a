package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second
const idempotencyHeader = "Idempotency-Key"

// Client talks JSON over HTTP to the TicketNow backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// APIError carries the HTTP status of a failed request plus the message the
// server returned, when it returned one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// postJSON sends a JSON body with a fresh idempotency key, so a user-initiated
// retry of the same action cannot double-apply server-side.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, uuid.NewString())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf(
			"request method=%s path=%s error=%v duration=%s",
			req.Method, req.URL.Path, err, time.Since(start),
		)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = res.Body.Close() }()

	c.logger.Printf(
		"request method=%s path=%s status=%d duration=%s",
		req.Method, req.URL.Path, res.StatusCode, time.Since(start),
	)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: res.StatusCode, Message: errorMessage(res.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// mapNotFound rewrites a 404 into the given sentinel so callers can use
// errors.Is instead of poking at status codes.
func mapNotFound(err, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return sentinel
	}
	return err
}

// firstNonEmpty picks the first populated identifier; the backend serves
// "_id" on some objects and "id" on others.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseDate tolerates the backend's date formats; an unparseable or missing
// date becomes the zero time rather than failing the whole payload.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
