package tracer

import (
	"context"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"go.uber.org/fx"
)

// FXModule provides a Uber FX module that configures distributed tracing.
// It provides *Tracer, exposes it as gateway.Tracer so the gateway client
// opens a span per call, and shuts the provider down on stop.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(tracer.Config{ServiceName: "gatewayctl"}),
//	    tracer.FXModule,
//	    gateway.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient, // Provides *Tracer
		fx.Annotate(
			func(t *Tracer) gateway.Tracer { return t },
			fx.As(new(gateway.Tracer)),
		),
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes pending spans and shuts the tracer provider down on stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracer.Shutdown(ctx)
		},
	})
}
