package qdrant

import (
	"context"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"github.com/Aleph-Alpha/gateway-client-go/v1/vectordb"
	"go.uber.org/fx"
)

// FXModule provides a *QdrantClient and binds it to vectordb.Service.
// A *Config must be supplied by the application.
//
//	app := fx.New(
//	    fx.Supply(qdrant.NewConfig()),
//	    qdrant.FXModule,
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
		fx.Annotate(
			func(c *QdrantClient) vectordb.Service { return c },
			fx.As(new(vectordb.Service)),
		),
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams groups the dependencies needed to create a QdrantClient.
type QdrantParams struct {
	fx.In

	Config   *Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// RegisterQdrantLifecycle closes the gRPC connection when the app stops.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.logInfo(ctx, "qdrant client stopping", nil)
			return client.Close()
		},
	})
}
