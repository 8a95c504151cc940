// Package tracer provides OpenTelemetry distributed tracing for the gateway client.
//
// A *Tracer owns an SDK tracer provider, optionally exporting spans over
// OTLP/HTTP, and implements gateway.Tracer: the gateway client wraps each
// call in a span and sends the span's W3C trace-context headers
// (traceparent, tracestate, baggage) with the request.
//
// # Basic Usage
//
//	t, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "gatewayctl",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	    Endpoint:     "otel-collector:4318",
//	    Insecure:     true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer t.Shutdown(context.Background())
//
//	gw, err := gateway.NewClient(cfg, gateway.WithTracer(t))
//
// # Manual Spans
//
//	ctx, span := t.StartSpan(ctx, "import-documents")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"bucket": bucketID})
//	if err != nil {
//	    t.RecordErrorOnSpan(span, err)
//	}
//
// # Testing
//
// NewClientWithExporter accepts any SpanExporter, e.g. tracetest's
// in-memory exporter, and exports synchronously.
package tracer
