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
	"time"

	"github.com/google/uuid"
	"github.com/pders01/neuronest/internal/logging"
)

const (
	// DefaultURL is the fallback NeuroNest server
	DefaultURL = "http://localhost:8000"
	// PathPrefix is the versioned API prefix
	PathPrefix = "/api/v1"
	// DefaultTimeout is used when no HTTP client is provided
	DefaultTimeout = 15 * time.Second
)

// TokenSource provides the bearer token for authenticated calls
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource with a fixed value
type StaticToken string

// Token returns the token
func (s StaticToken) Token() string { return string(s) }

// Client talks to the NeuroNest API
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the transport timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the server root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one API call
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	// token overrides the token source; noAuth suppresses the header entirely
	token  string
	noAuth bool
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do sends the request and decodes a JSON success body into T.
// A success without content yields (nil, nil).
func do[T any](ctx context.Context, c *Client, r request) (*T, error) {
	endpoint := c.baseURL + PathPrefix + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if !r.noAuth {
		token := r.token
		if token == "" && c.tokens != nil {
			token = c.tokens.Token()
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	op := r.method + " " + r.path
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debugf("[request_id=%s] %s failed: %v", requestID, op, err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	c.logger.Debugf("[request_id=%s] %s -> %d (%s)", requestID, op, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseError(resp.StatusCode, body)
		c.logger.Debugf("[request_id=%s] %s error: %v", requestID, op, apiErr)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return &out, nil
}

// Ping checks that the server root answers
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "GET /", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseError(resp.StatusCode, body)
	}
	return nil
}
