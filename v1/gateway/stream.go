package gateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
	eventStream  = "text/event-stream"
)

// Stream is a single-consumer sequence of values decoded from a server-sent
// event stream, one per "data: " line. It is not restartable.
//
// Example:
//
//	stream, err := gw.Stream(ctx, req)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	for stream.Next() {
//	    handle(stream.Current())
//	}
//	return stream.Err()
type Stream[T any] struct {
	ctx     context.Context
	body    io.ReadCloser
	reader  *bufio.Reader
	release func()
	onSkip  func(payload []byte, err error)

	cur    T
	err    error
	done   bool
	closed atomic.Bool
	once   sync.Once
	cerr   error
}

// NewStream wraps an event-stream body. The stream owns body and closes it
// when iteration ends or Close is called.
func NewStream[T any](ctx context.Context, body io.ReadCloser) *Stream[T] {
	return newStream[T](ctx, body, nil, nil)
}

func newStream[T any](ctx context.Context, body io.ReadCloser, release func(), onSkip func([]byte, error)) *Stream[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Stream[T]{
		ctx:     ctx,
		body:    body,
		reader:  bufio.NewReader(body),
		release: release,
		onSkip:  onSkip,
	}
}

// Typed converts an unconsumed raw stream into a stream of T. Frames whose
// payload does not decode into T are skipped like malformed JSON.
func Typed[T any](raw *Stream[json.RawMessage]) *Stream[T] {
	return &Stream[T]{
		ctx:     raw.ctx,
		body:    raw.body,
		reader:  raw.reader,
		release: raw.release,
		onSkip:  raw.onSkip,
	}
}

// StreamAs opens a stream through t and decodes every event into T.
func StreamAs[T any](ctx context.Context, t Transport, req Request) (*Stream[T], error) {
	raw, err := t.Stream(ctx, req)
	if err != nil {
		return nil, err
	}
	return Typed[T](raw), nil
}

// Next advances to the next decoded value. It returns false once the
// stream ended, either on the [DONE] sentinel, at the end of the body or
// on a read error reported by Err. The body is released in every case.
func (s *Stream[T]) Next() bool {
	if s.done || s.closed.Load() {
		return false
	}

	for {
		payload, ok, err := s.nextPayload()
		if err != nil {
			s.err = err
			s.finish()
			return false
		}
		if !ok {
			s.finish()
			return false
		}

		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			if s.onSkip != nil {
				s.onSkip(payload, err)
			}
			continue
		}
		s.cur = v
		return true
	}
}

// Current returns the value decoded by the last successful Next.
func (s *Stream[T]) Current() T {
	return s.cur
}

// Err returns the error that ended the stream, nil after a clean end.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close releases the response body. It is safe to call more than once and
// from another goroutine to abort a pending read.
func (s *Stream[T]) Close() error {
	s.once.Do(func() {
		s.closed.Store(true)
		if s.body != nil {
			s.cerr = s.body.Close()
		}
		if s.release != nil {
			s.release()
		}
	})
	return s.cerr
}

// All returns an iterator over the remaining values. A read error is
// yielded once as the final pair. The stream is closed when the loop ends,
// including on an early break.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.cur, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

func (s *Stream[T]) finish() {
	s.done = true
	_ = s.Close()
}

// nextPayload returns the payload of the next data line. ok is false when
// the stream ended cleanly.
func (s *Stream[T]) nextPayload() (payload []byte, ok bool, err error) {
	for {
		line, readErr := s.reader.ReadBytes('\n')
		if readErr != nil {
			// An unterminated trailing fragment is not a complete line.
			if errors.Is(readErr, io.EOF) {
				return nil, false, nil
			}
			if s.closed.Load() {
				return nil, false, nil
			}
			return nil, false, newTransportError(s.ctx, s.ctx, "failed to read stream", readErr)
		}

		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, []byte(dataPrefix)) {
			continue
		}
		data := bytes.TrimSpace(line[len(dataPrefix):])
		if string(data) == doneSentinel {
			return nil, false, nil
		}
		return data, true, nil
	}
}

// Stream performs one streaming request and returns its decoded events.
// The call is never retried. The configured timeout applies only until
// the response headers arrive; ctx can abort the stream at any time.
//
// Example:
//
//	stream, err := gw.Stream(ctx, gateway.Request{Method: http.MethodPost, Path: "/chat/completions", Body: body})
//	if err != nil {
//	    return err
//	}
//	for event, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(string(event))
//	}
func (c *Client) Stream(ctx context.Context, req Request) (_ *Stream[json.RawMessage], err error) {
	start := time.Now()
	ctx, endSpan := c.startSpan(ctx, "gateway.stream", req)

	p, err := c.prepare(ctx, req, eventStream)
	if err != nil {
		endSpan(err)
		return nil, err
	}

	streamCtx, cancel := context.WithCancelCause(ctx)
	var status int
	defer func() {
		c.observeOperation("stream", p, time.Since(start), err, 0, map[string]interface{}{
			"status_code": status,
		})
		if err != nil {
			cancel(nil)
			endSpan(err)
		}
	}()

	timer := time.AfterFunc(c.cfg.Timeout, func() { cancel(errStreamTimeout) })

	httpReq, err := p.newHTTPRequest(streamCtx)
	if err != nil {
		timer.Stop()
		return nil, &TransportError{Message: "failed to build request", Cause: err}
	}

	resp, err := c.doer.Do(httpReq)
	fired := !timer.Stop()
	if err != nil {
		return nil, newTransportError(ctx, streamCtx, "request failed", err)
	}
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var raw []byte
		if resp.Body != nil {
			raw, _ = io.ReadAll(resp.Body)
			resp.Body.Close()
		}
		return nil, newAPIError(resp.StatusCode, resp.Status, raw)
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, &TransportError{
			Message:    "response has no readable body",
			StatusCode: resp.StatusCode,
			Cause:      ErrNoResponseBody,
		}
	}

	if fired {
		resp.Body.Close()
		return nil, newTransportError(ctx, streamCtx, "request failed", context.Cause(streamCtx))
	}

	release := func() {
		cancel(nil)
		endSpan(nil)
	}
	onSkip := func(payload []byte, skipErr error) {
		c.logWarn(ctx, "skipping malformed stream frame", skipErr, map[string]interface{}{
			"path":    p.path,
			"payload": truncate(payload, 256),
		})
		c.observeOperation("stream_frame_skipped", p, 0, skipErr, int64(len(payload)), nil)
	}

	return newStream[json.RawMessage](streamCtx, resp.Body, release, onSkip), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
