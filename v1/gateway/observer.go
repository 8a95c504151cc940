package gateway

import (
	"context"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
func (c *Client) observeOperation(operation string, p *prepared, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "gateway",
		Operation:   operation,
		Resource:    p.method,
		SubResource: p.path,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}

// startSpan opens a span for one call when a tracer is configured. The
// returned end function is always safe to call.
func (c *Client) startSpan(ctx context.Context, name string, req Request) (context.Context, func(error)) {
	if c.tracer == nil {
		return ctx, func(error) {}
	}

	ctx, span := c.tracer.StartSpan(ctx, name)
	c.tracer.SetAttributes(span, map[string]interface{}{
		"http.method":  req.Method,
		"gateway.path": req.Path,
	})

	return ctx, func(err error) {
		if err != nil {
			c.tracer.RecordErrorOnSpan(span, err)
		}
		span.End()
	}
}

func (c *Client) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

func (c *Client) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}
