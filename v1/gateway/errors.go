package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Common gateway errors.
var (
	// ErrMissingAPIToken is returned when a client is configured without a credential.
	ErrMissingAPIToken = errors.New("gateway: missing API token")

	// ErrInvalidBaseURL is returned when the configured base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("gateway: invalid base URL")

	// ErrMissingHTTPClient is returned when no HTTP primitive is available to issue calls.
	ErrMissingHTTPClient = errors.New("gateway: no HTTP client available")

	// ErrNoResponseBody is returned when a streaming response carries no readable body.
	ErrNoResponseBody = errors.New("gateway: response has no readable body")

	// errStreamTimeout is the cancellation cause used when a stream's response
	// headers do not arrive within the configured timeout.
	errStreamTimeout = errors.New("gateway: stream timed out waiting for response")
)

// Kind tags the two failure families a gateway call can produce.
type Kind int

const (
	// KindOther is any error that is neither a transport nor an API error,
	// e.g. a request body that cannot be encoded.
	KindOther Kind = iota

	// KindTransport covers network failures, timeouts, cancellation and missing bodies.
	KindTransport

	// KindAPI covers every non-2xx response reported by the gateway.
	KindAPI
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	default:
		return "other"
	}
}

// TransportError is a client-side failure: the request could not be issued,
// the connection failed, the call timed out or was cancelled.
type TransportError struct {
	// Message is a human-readable description of the failure.
	Message string

	// StatusCode is the HTTP status when a response was received, 0 otherwise.
	StatusCode int

	// Response holds the raw response payload when one was read.
	Response any

	// Cause is the underlying error, if any.
	Cause error

	// Cancelled is true when the caller's context ended the call.
	// Cancelled errors are never retried.
	Cancelled bool

	// Timeout is true when the client's own timeout ended the attempt.
	Timeout bool
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.StatusCode)
	}
	return "gateway: " + e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// APIError is a well-formed rejection from the gateway: any non-2xx response.
// APIErrors are never retried.
type APIError struct {
	// Message is taken from the response's error payload, or falls back to
	// "HTTP <status>: <statusText>".
	Message string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Type is the optional error-type tag from {"error": {"type": ...}}.
	Type string

	// Body is the parsed JSON response body, nil when it could not be parsed.
	Body any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("gateway: api error %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("gateway: api error %d: %s", e.StatusCode, e.Message)
}

// Transport returns the error viewed as its generalized form.
func (e *APIError) Transport() *TransportError {
	return &TransportError{
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Response:   e.Body,
	}
}

// Classify reports which failure family err belongs to.
func Classify(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindAPI
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindTransport
	}
	return KindOther
}

// IsAPIError checks if the error is a gateway-reported API error.
func IsAPIError(err error) bool {
	return Classify(err) == KindAPI
}

// IsCancelled checks if the error was caused by the caller cancelling the call.
func IsCancelled(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Cancelled
}

// IsTimeout checks if the error was caused by the client's own timeout.
func IsTimeout(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Timeout
}

// IsRetryable checks if the error may be retried: transport errors that did
// not originate from a cancellation.
func IsRetryable(err error) bool {
	if IsAPIError(err) {
		return false
	}
	var transportErr *TransportError
	return errors.As(err, &transportErr) && !transportErr.Cancelled
}

// newAPIError builds an APIError from a non-2xx response.
func newAPIError(statusCode int, status string, raw []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", statusCode, statusText(statusCode, status)),
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return apiErr
	}
	apiErr.Body = parsed

	obj, ok := parsed.(map[string]any)
	if !ok {
		return apiErr
	}

	switch e := obj["error"].(type) {
	case string:
		apiErr.Message = e
	case map[string]any:
		if msg, ok := e["message"].(string); ok && msg != "" {
			apiErr.Message = msg
		}
		if typ, ok := e["type"].(string); ok {
			apiErr.Type = typ
		}
	}

	return apiErr
}

// statusText extracts the reason phrase from a status line such as
// "404 Not Found", falling back to the canonical text for the code.
func statusText(code int, status string) string {
	if text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code))); text != "" {
		return text
	}
	return http.StatusText(code)
}

// newTransportError classifies a failed attempt. The caller's context takes
// precedence: once it is done the failure is a cancellation, even if the
// internal deadline fired as well.
func newTransportError(callerCtx, attemptCtx context.Context, msg string, cause error) *TransportError {
	if callerErr := callerCtx.Err(); callerErr != nil {
		if !errors.Is(cause, callerErr) {
			cause = fmt.Errorf("%w: %w", callerErr, cause)
		}
		return &TransportError{
			Message:   fmt.Sprintf("%s: request cancelled", msg),
			Cause:     cause,
			Cancelled: true,
		}
	}

	if attemptCtx != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &TransportError{
			Message: fmt.Sprintf("%s: request timed out", msg),
			Cause:   cause,
			Timeout: true,
		}
	}

	if attemptCtx != nil && errors.Is(context.Cause(attemptCtx), errStreamTimeout) {
		return &TransportError{
			Message: fmt.Sprintf("%s: request timed out", msg),
			Cause:   cause,
			Timeout: true,
		}
	}

	return &TransportError{
		Message: fmt.Sprintf("%s: %v", msg, cause),
		Cause:   cause,
	}
}
