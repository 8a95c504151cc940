// Package gateway provides the HTTP transport for the AI gateway client.
//
// The gateway package is the layer every resource service (chat, embeddings,
// vectors, files, tracing) is built on. It turns a Request into an HTTP call,
// retries transient failures with exponential backoff, translates non-2xx
// responses into structured errors and decodes server-sent event streams
// into typed values.
//
// Core Features:
//   - JSON request/response handling with bearer authentication
//   - Per-attempt timeout and caller cancellation through context.Context
//   - Retry of transport failures with 2^attempt backoff
//   - Structured APIError and TransportError types
//   - Incremental decoding of "data: " SSE frames into Stream[T]
//   - Optional logging, observer and OpenTelemetry span integration
//   - Fx module for dependency injection
//
// # Basic Usage
//
//	cfg := gateway.NewConfig() // reads GATEWAY_* environment variables
//	gw, err := gateway.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var out map[string]any
//	err = gw.Execute(ctx, gateway.Request{
//	    Method: http.MethodPost,
//	    Path:   "/api/client/v1/embeddings",
//	    Body:   map[string]any{"model": "luminous-base", "input": "hello"},
//	}, &out)
//
// # Configuration
//
// Config can be built programmatically, from the environment or from YAML:
//
//	cfg := gateway.DefaultConfig().WithAPIToken(token).WithMaxRetries(1)
//	cfg := gateway.NewConfig()                      // GATEWAY_API_TOKEN, GATEWAY_BASE_URL,
//	                                                // GATEWAY_TIMEOUT_MS, GATEWAY_MAX_RETRIES
//	cfg, err := gateway.LoadConfig("gateway.yaml")  // environment overrides the file
//
// # Retries
//
// Execute makes at most MaxRetries+1 attempts. Only transport failures are
// retried: network errors, unreadable bodies and per-attempt timeouts.
// A non-2xx response is an *APIError and is returned immediately. When the
// caller's context is done the call stops at once and the error reports
// Cancelled, even if the internal timeout fired at the same moment.
//
// The wait after attempt n is 2^n times the backoff unit (one second by
// default). Tests usually shorten it:
//
//	gw, _ := gateway.NewClient(cfg, gateway.WithBackoffUnit(time.Millisecond))
//
// # Error Handling
//
//	err := gw.Execute(ctx, req, &out)
//	switch gateway.Classify(err) {
//	case gateway.KindAPI:
//	    var apiErr *gateway.APIError
//	    errors.As(err, &apiErr)
//	    fmt.Println(apiErr.StatusCode, apiErr.Type, apiErr.Message)
//	case gateway.KindTransport:
//	    if gateway.IsCancelled(err) {
//	        return ctx.Err()
//	    }
//	}
//
// # Streaming
//
// Stream issues a single call (never retried) and returns a Stream. Only
// lines starting with "data: " carry events; "[DONE]" ends the stream and
// frames that are not valid JSON are skipped and logged. The timeout covers
// the wait for the response headers only.
//
//	stream, err := gateway.StreamAs[Chunk](ctx, gw, req)
//	if err != nil {
//	    return err
//	}
//	for chunk, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Text)
//	}
//
// # Observability
//
// WithObserver reports one "execute" operation per attempt, one "stream"
// operation per stream open and one "stream_frame_skipped" operation per
// malformed frame. WithTracer wraps each call in a span and sends its
// trace-context headers with the request.
//
// # Thread Safety
//
// A Client is safe for concurrent use by multiple goroutines. A Stream must
// be consumed by a single goroutine; Close may be called from another one.
package gateway
