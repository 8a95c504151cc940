package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Aleph-Alpha/gateway-client-go"

// Tracer owns an OpenTelemetry tracer provider and offers the span helpers
// used by the gateway client.
type Tracer struct {
	provider   *sdktrace.TracerProvider
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// NewClient builds a tracer provider from cfg and installs it, together
// with the W3C trace-context and baggage propagators, as the global default.
//
// Example:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "gatewayctl", EnableExport: true})
//	if err != nil {
//	    return err
//	}
//	defer t.Shutdown(context.Background())
//	gw, _ := gateway.NewClient(cfg, gateway.WithTracer(t))
func NewClient(cfg Config) (*Tracer, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		var clientOpts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			clientOpts = append(clientOpts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
		}

		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(clientOpts...))
		if err != nil {
			return nil, fmt.Errorf("tracer: cannot initiate exporter: %w", err)
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	return newTracer(cfg, options...), nil
}

// NewClientWithExporter builds a tracer that exports synchronously to exporter.
// It is meant for tests and tools that collect spans in-process.
func NewClientWithExporter(cfg Config, exporter sdktrace.SpanExporter) *Tracer {
	return newTracer(cfg, sdktrace.WithSyncer(exporter))
}

func newTracer(cfg Config, options ...sdktrace.TracerProviderOption) *Tracer {
	options = append(options, sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := sdktrace.NewTracerProvider(options...)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	return &Tracer{
		provider:   tp,
		tracer:     tp.Tracer(instrumentationName),
		propagator: propagator,
	}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
