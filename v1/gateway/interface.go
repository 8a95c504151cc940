package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Transport is the surface the resource services depend on. *Client
// implements it; tests substitute a fake.
type Transport interface {
	// Execute performs one logical request (with retries) and decodes the
	// JSON response into out. A nil out discards the body.
	Execute(ctx context.Context, req Request, out any) error

	// Stream performs one streaming request and returns the decoded events.
	Stream(ctx context.Context, req Request) (*Stream[json.RawMessage], error)
}

// Doer is the HTTP primitive used to issue calls. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a plain function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Sleeper waits for d or until ctx is done, whichever comes first. It
// returns ctx.Err() when the wait was interrupted.
type Sleeper func(ctx context.Context, d time.Duration) error

// Logger is an interface that matches the v1/logger.LoggerClient context-aware methods.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Tracer is an interface that matches the v1/tracer.Tracer span helpers.
type Tracer interface {
	// StartSpan starts a span named name as a child of any span in ctx.
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)

	// SetAttributes records attributes on span.
	SetAttributes(span trace.Span, attrs map[string]interface{})

	// RecordErrorOnSpan marks span as failed with err.
	RecordErrorOnSpan(span trace.Span, err error)

	// GetCarrier returns the propagation headers for the span in ctx.
	GetCarrier(ctx context.Context) map[string]string
}
