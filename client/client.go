// the client package is a thin synchronous client for the OpenFMB microgrid
// monitoring API. It retrieves device telemetry (latest and historical
// measurements), funnels every request through a single request-and-decode
// path and translates all transport and HTTP failures into one error type
// (see client/errors.go).
package client

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds each request. Control applications poll the API from
// a loop and must not hang on a dead backend.
const DefaultTimeout = 5 * time.Second

// Client handles communication with the OpenFMB API
type Client struct {
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
	httpClient *http.Client
}

// Option customizes a Client created by New.
type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request diagnostics. Without this
// option the client logs via slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying *http.Client. The caller is
// responsible for configuring its timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8000".
// A trailing slash on baseURL is stripped. The returned client reuses one
// underlying HTTP connection pool for all requests.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c
}

// BaseURL returns the normalized base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a request and decodes the JSON response body into v (skipped when
// v is nil). Failures are mapped onto *APIError, first match wins: transport
// timeout, connection failure, HTTP error status, undecodable body. Every
// failure path logs a diagnostic line before returning.
func (c *Client) do(method string, endpoint string, query url.Values, v any) error {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, reqURL, nil)
	if err != nil {
		c.logger.Error("could not build request", slog.String("url", reqURL), slog.String("error", err.Error()))
		return newConnectionError(reqURL)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Error("timeout connecting", slog.String("url", reqURL), slog.Duration("timeout", c.timeout))
			return newTimeoutError(reqURL, c.timeout)
		}
		c.logger.Error("connection failed", slog.String("url", reqURL), slog.String("error", err.Error()))
		return newConnectionError(reqURL)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.Error("failed to read response body", slog.String("url", reqURL), slog.String("error", err.Error()))
		return newConnectionError(reqURL)
	}

	if res.StatusCode >= http.StatusBadRequest {
		c.logger.Error("HTTP error", slog.Int("status", res.StatusCode), slog.String("body", string(body)))
		return newHTTPError(res.StatusCode, body)
	}

	if v == nil {
		return nil
	}

	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("invalid JSON received", slog.String("url", reqURL))
		return newDecodeError(reqURL)
	}

	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
