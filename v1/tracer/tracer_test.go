package tracer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tr := NewClientWithExporter(Config{ServiceName: "test"}, exporter)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })
	return tr, exporter
}

func TestSpanHelpers(t *testing.T) {
	tr, exporter := newTestTracer(t)

	_, span := tr.StartSpan(context.Background(), "flush")
	tr.SetAttributes(span, map[string]interface{}{
		"events":  3,
		"session": "s-1",
		"ok":      false,
		"ratio":   0.5,
	})
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "flush", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.Int("events", 3))
	assert.Contains(t, spans[0].Attributes, attribute.String("session", "s-1"))
	assert.Len(t, spans[0].Events, 1)
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newTestTracer(t)

	ctx, span := tr.StartSpan(context.Background(), "parent")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	extracted := tr.SetCarrierOnContext(context.Background(), carrier)
	_, child := tr.StartSpan(extracted, "child")
	defer child.End()
	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
}

func TestGatewayCallsAreTraced(t *testing.T) {
	tr, exporter := newTestTracer(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("traceparent"))
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"missing"}`))
	}))
	defer server.Close()

	gw, err := gateway.NewClient(gateway.DefaultConfig().WithBaseURL(server.URL).WithAPIToken("t"), gateway.WithTracer(tr))
	require.NoError(t, err)

	err = gw.Execute(context.Background(), gateway.Request{Method: http.MethodGet, Path: "/files"}, nil)
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "gateway.execute", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("gateway.path", "/files"))
}
