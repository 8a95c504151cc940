package client

import (
	"github.com/Aleph-Alpha/gateway-client-go/v1/chat"
	"github.com/Aleph-Alpha/gateway-client-go/v1/embedding"
	"github.com/Aleph-Alpha/gateway-client-go/v1/files"
	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
	"github.com/Aleph-Alpha/gateway-client-go/v1/vectors"
	"go.uber.org/fx"
)

// FXModule composes the gateway transport with every resource service and
// provides *Client on top. A *gateway.Config must be supplied.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(gateway.NewConfig()),
//	    client.FXModule,
//	    fx.Invoke(func(c *client.Client) { ... }),
//	)
var FXModule = fx.Module("client",
	gateway.FXModule,
	chat.FXModule,
	embedding.FXModule,
	vectors.FXModule,
	files.FXModule,
	tracing.FXModule,
	fx.Provide(NewClientWithDI),
)

// ClientParams groups the services the Client bundles.
type ClientParams struct {
	fx.In

	Gateway    *gateway.Client
	Chat       *chat.Service
	Embeddings *embedding.Service
	Vectors    *vectors.Service
	Files      *files.Service
	Tracing    *tracing.Service
}

// NewClientWithDI builds a Client from services already in the container.
func NewClientWithDI(p ClientParams) *Client {
	return &Client{
		gateway:    p.Gateway,
		Chat:       p.Chat,
		Embeddings: p.Embeddings,
		Vectors:    p.Vectors,
		Files:      p.Files,
		Tracing:    p.Tracing,
	}
}
