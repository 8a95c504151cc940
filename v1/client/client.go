package client

import (
	"github.com/Aleph-Alpha/gateway-client-go/v1/chat"
	"github.com/Aleph-Alpha/gateway-client-go/v1/embedding"
	"github.com/Aleph-Alpha/gateway-client-go/v1/files"
	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
	"github.com/Aleph-Alpha/gateway-client-go/v1/vectors"
)

// Client bundles every gateway resource behind one shared transport.
type Client struct {
	gateway *gateway.Client

	Chat       *chat.Service
	Embeddings *embedding.Service
	Vectors    *vectors.Service
	Files      *files.Service
	Tracing    *tracing.Service
}

// New builds a gateway.Client from cfg and opts and wires all services to it.
//
// Example:
//
//	c, err := client.New(gateway.NewConfig())
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	resp, err := c.Chat.Create(ctx, chat.CompletionRequest{...})
func New(cfg *gateway.Config, opts ...gateway.Option) (*Client, error) {
	gw, err := gateway.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromGateway(gw), nil
}

// NewFromEnv is New with the configuration read from GATEWAY_* environment variables.
func NewFromEnv(opts ...gateway.Option) (*Client, error) {
	return New(gateway.NewConfig(), opts...)
}

// NewFromGateway wires all services to an existing gateway client.
func NewFromGateway(gw *gateway.Client) *Client {
	return &Client{
		gateway:    gw,
		Chat:       chat.NewService(gw),
		Embeddings: embedding.NewService(gw),
		Vectors:    vectors.NewService(gw),
		Files:      files.NewService(gw),
		Tracing:    tracing.NewService(gw),
	}
}

// Gateway returns the underlying transport client.
func (c *Client) Gateway() *gateway.Client {
	return c.gateway
}

// NewRecorder returns a tracing.Recorder that flushes sessions named name
// through this client.
func (c *Client) NewRecorder(name string, opts ...tracing.RecorderOption) *tracing.Recorder {
	return tracing.NewRecorder(c.Tracing, name, opts...)
}

// VectorStore returns a vectordb.Service over the indexes of providerID.
func (c *Client) VectorStore(providerID string) *vectors.Store {
	return vectors.NewStore(c.Vectors, providerID)
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.gateway.Close()
}
