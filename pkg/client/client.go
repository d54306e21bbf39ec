package client

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

	"github.com/matzehuels/roadtower/pkg/buildinfo"
	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/observability"
)

// DefaultTimeout bounds a single backend call. Roadmap generation is slow,
// so this is generous.
const DefaultTimeout = 2 * time.Minute

// DefaultBaseURL is the address of a locally running roadmap service.
const DefaultBaseURL = "http://localhost:5000"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 16 << 20

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client talks to the roadmap service. It never retries: every failure is
// returned to the caller as is.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.http.Timeout = d } }

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid backend URL %q", baseURL)
	}

	c := &Client{
		base:    u,
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: map[string]string{"User-Agent": buildinfo.UserAgent()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string { return c.base.String() }

type existsResponse struct {
	Exists bool `json:"exists"`
}

// CheckExists asks whether a roadmap is already stored for userID.
func (c *Client) CheckExists(ctx context.Context, userID string) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, nil, "check_roadmap", url.PathEscape(userID))
	if err != nil {
		return false, err
	}
	var resp existsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, errors.Wrap(errors.ErrCodeMalformedPayload, err, "malformed existence response")
	}
	return resp.Exists, nil
}

type generateRequest struct {
	UserID string `json:"user_id"`
}

// Generate asks the service to produce a roadmap for userID and returns the
// raw payload. The service may return a stored roadmap rather than a new one.
func (c *Client) Generate(ctx context.Context, userID string) ([]byte, error) {
	payload, err := json.Marshal(generateRequest{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, payload, "generate_roadmap")
}

// Fetch returns the roadmap stored for userID without generating one.
func (c *Client) Fetch(ctx context.Context, userID string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, nil, "roadmap", url.PathEscape(userID))
}

// do performs one request against the path built from segments, which must
// already be escaped, and returns the body of a 2xx response that holds valid
// JSON.
func (c *Client) do(ctx context.Context, method string, payload []byte, segments ...string) ([]byte, error) {
	u := c.base.JoinPath(segments...)
	path := "/" + strings.TrimPrefix(u.Path, "/")

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID(ctx))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, u.Host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, u.Host, path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "could not connect to the backend server")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		hooks.OnError(ctx, method, u.Host, path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "could not connect to the backend server")
	}
	hooks.OnResponse(ctx, method, u.Host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, backendError(resp.StatusCode, data)
	}
	if !json.Valid(data) {
		return nil, errors.New(errors.ErrCodeMalformedPayload, "malformed roadmap JSON data")
	}
	return data, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// backendError extracts the service's "error" field from a non-OK response.
func backendError(status int, body []byte) *errors.BackendError {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error == "" {
		return &errors.BackendError{Status: status, Message: errors.UnknownBackendError}
	}
	return &errors.BackendError{Status: status, Message: resp.Error}
}

type requestIDKey struct{}

// WithRequestID returns a context whose backend calls carry id in the
// X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// requestID returns the id stored by [WithRequestID], or a fresh random one.
func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
