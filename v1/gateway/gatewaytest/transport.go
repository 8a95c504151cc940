// Package gatewaytest provides an in-memory gateway.Transport for testing
// code built on top of the gateway client.
package gatewaytest

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
)

// Call is one recorded request.
type Call struct {
	Request gateway.Request
	Stream  bool
}

// Body returns the request body as generic JSON, or nil when there is none.
func (c Call) Body() map[string]any {
	if c.Request.Body == nil {
		return nil
	}
	raw, err := json.Marshal(c.Request.Body)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// Transport records every request and answers with canned responses.
// It is safe for concurrent use.
type Transport struct {
	// Respond produces the response for an Execute call. The result is
	// JSON-encoded and decoded into the caller's out value; a
	// json.RawMessage is used as is. A nil Respond answers with no body.
	Respond func(req gateway.Request) (any, error)

	// StreamBody produces the raw event-stream body for a Stream call.
	StreamBody func(req gateway.Request) (string, error)

	mu    sync.Mutex
	calls []Call
}

// Execute implements gateway.Transport.
func (t *Transport) Execute(ctx context.Context, req gateway.Request, out any) error {
	t.record(req, false)
	if err := ctx.Err(); err != nil {
		return &gateway.TransportError{Message: "request cancelled", Cause: err, Cancelled: true}
	}
	if t.Respond == nil {
		return nil
	}

	resp, err := t.Respond(req)
	if err != nil {
		return err
	}
	if out == nil || resp == nil {
		return nil
	}

	raw, ok := resp.(json.RawMessage)
	if !ok {
		if raw, err = json.Marshal(resp); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw, out)
}

// Stream implements gateway.Transport.
func (t *Transport) Stream(ctx context.Context, req gateway.Request) (*gateway.Stream[json.RawMessage], error) {
	t.record(req, true)
	body := ""
	if t.StreamBody != nil {
		var err error
		if body, err = t.StreamBody(req); err != nil {
			return nil, err
		}
	}
	return gateway.NewStream[json.RawMessage](ctx, io.NopCloser(strings.NewReader(body))), nil
}

// Calls returns a copy of the recorded requests in order.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// Last returns the most recent request. It panics when nothing was recorded.
func (t *Transport) Last() Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[len(t.calls)-1]
}

func (t *Transport) record(req gateway.Request, stream bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, Call{Request: req, Stream: stream})
}

var _ gateway.Transport = (*Transport)(nil)
