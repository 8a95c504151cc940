package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Execute performs one logical request and decodes the JSON response into
// out. A nil out discards the response body.
//
// Transport failures other than cancellation are retried up to MaxRetries
// times, waiting 2^attempt * backoff unit between attempts. Non-2xx
// responses are returned as *APIError and never retried. Once ctx is done
// the call returns a cancellation error without further attempts.
//
// Example:
//
//	var models ModelList
//	err := gw.Execute(ctx, gateway.Request{Method: http.MethodGet, Path: "/models"}, &models)
//	var apiErr *gateway.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
//	    // ...
//	}
func (c *Client) Execute(ctx context.Context, req Request, out any) (err error) {
	ctx, endSpan := c.startSpan(ctx, "gateway.execute", req)
	defer func() { endSpan(err) }()

	p, err := c.prepare(ctx, req, "")
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		err = c.attempt(ctx, p, out, attempt)
		if err == nil {
			return nil
		}
		if attempt >= c.cfg.MaxRetries || !IsRetryable(err) {
			return err
		}

		delay := c.backoff(attempt)
		c.logWarn(ctx, "retrying gateway request", err, map[string]interface{}{
			"method":   p.method,
			"path":     p.path,
			"attempt":  attempt + 1,
			"delay_ms": delay.Milliseconds(),
		})

		if sleepErr := c.sleep(ctx, delay); sleepErr != nil || ctx.Err() != nil {
			if sleepErr == nil {
				sleepErr = ctx.Err()
			}
			return newTransportError(ctx, nil, "waiting to retry", sleepErr)
		}
	}
}

// attempt issues a single HTTP call bounded by the configured timeout.
func (c *Client) attempt(ctx context.Context, p *prepared, out any, attempt int) (err error) {
	start := time.Now()
	var (
		status int
		size   int64
	)
	defer func() {
		c.observeOperation("execute", p, time.Since(start), err, size, map[string]interface{}{
			"attempt":     attempt,
			"status_code": status,
		})
	}()

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	httpReq, err := p.newHTTPRequest(attemptCtx)
	if err != nil {
		return &TransportError{Message: fmt.Sprintf("failed to build request: %v", err), Cause: err}
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return newTransportError(ctx, attemptCtx, "request failed", err)
	}

	status = resp.StatusCode
	var raw []byte
	if resp.Body != nil {
		defer resp.Body.Close()
		raw, err = io.ReadAll(resp.Body)
	}

	// a rejection stays an APIError even when its body is unreadable
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if err != nil {
			raw = nil
		}
		size = int64(len(raw))
		return newAPIError(resp.StatusCode, resp.Status, raw)
	}
	if err != nil {
		te := newTransportError(ctx, attemptCtx, "failed to read response body", err)
		te.StatusCode = resp.StatusCode
		return te
	}
	size = int64(len(raw))

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{
			Message:    "failed to decode response body",
			StatusCode: resp.StatusCode,
			Response:   truncate(raw, 512),
			Cause:      err,
		}
	}
	return nil
}

// backoff returns the wait after the given zero-based attempt.
func (c *Client) backoff(attempt int) time.Duration {
	return (time.Duration(1) << attempt) * c.backoffUnit
}
