package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// APIError is the single error type returned by every client operation.
// StatusCode 0 = no HTTP status applies (connection failure or undecodable
// body), >0 = an HTTP response was received. Payload carries diagnostic
// context: the server's error body for HTTP failures, or the request URL
// (plus the configured timeout, for timeouts) otherwise.
type APIError struct {
	Message    string         `json:"message"`
	StatusCode int            `json:"status_code,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status_code=%d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// newTimeoutError creates an APIError for a request that hit the configured
// timeout. Reported as 408 so callers can treat it like a slow server.
func newTimeoutError(url string, timeout time.Duration) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("request timed out after %s", timeout),
		StatusCode: 408,
		Payload: map[string]any{
			"url":     url,
			"timeout": timeout.String(),
		},
	}
}

// newConnectionError creates an APIError for failures where no usable
// response was received
func newConnectionError(url string) *APIError {
	return &APIError{
		Message: "could not connect to the OpenFMB API",
		Payload: map[string]any{"url": url},
	}
}

// newHTTPError creates an APIError from an HTTP error response. The payload
// is the server's error body when it parses as JSON, otherwise the raw text
// under "detail".
func newHTTPError(statusCode int, body []byte) *APIError {
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		payload = map[string]any{"detail": string(body)}
	}

	return &APIError{
		Message:    fmt.Sprintf("API error: %d", statusCode),
		StatusCode: statusCode,
		Payload:    payload,
	}
}

// newDecodeError creates an APIError for a success response whose body is not
// valid JSON.
func newDecodeError(url string) *APIError {
	return &APIError{
		Message: "API returned invalid JSON",
		Payload: map[string]any{"url": url},
	}
}
