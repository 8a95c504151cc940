package gateway

import (
	"context"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the gateway client.
// This module registers the client with the Fx dependency injection framework,
// making it available to the resource services.
//
// The module provides:
// 1. *Client (concrete type) for direct use
// 2. Transport interface for the resource services
// 3. Lifecycle management for graceful shutdown
//
// A *Config must be supplied by the application.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(gateway.NewConfig()),
//	    gateway.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("gateway",
	fx.Provide(
		NewClientWithDI, // Provides *Client
		fx.Annotate(
			func(c *Client) Transport { return c },
			fx.As(new(Transport)),
		),
	),
	fx.Invoke(RegisterGatewayLifecycle),
)

// GatewayParams groups the dependencies needed to create a gateway Client.
type GatewayParams struct {
	fx.In

	Config   *Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   Tracer                 `optional:"true"`
	Doer     Doer                   `optional:"true"`
}

// NewClientWithDI creates a new gateway client using dependency injection.
// Logger, Observer, Tracer and Doer are applied when present in the container.
func NewClientWithDI(params GatewayParams) (*Client, error) {
	var opts []Option
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	if params.Tracer != nil {
		opts = append(opts, WithTracer(params.Tracer))
	}
	if params.Doer != nil {
		opts = append(opts, WithHTTPClient(params.Doer))
	}
	return NewClient(params.Config, opts...)
}

// RegisterGatewayLifecycle logs start and stop and releases idle connections on stop.
func RegisterGatewayLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			client.logInfo(ctx, "gateway client started", map[string]interface{}{
				"base_url":    client.cfg.BaseURL,
				"max_retries": client.cfg.MaxRetries,
				"timeout_ms":  client.cfg.Timeout.Milliseconds(),
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.logInfo(ctx, "gateway client stopping", nil)
			return client.Close()
		},
	})
}
