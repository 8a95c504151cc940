package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"github.com/Aleph-Alpha/gateway-client-go/v1/vectordb"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// QdrantClient wraps the official Qdrant Go client and implements
// vectordb.Service on a self-hosted Qdrant.
type QdrantClient struct {
	api      *qdrant.Client
	cfg      Config
	logger   Logger
	observer observability.Observer
}

var _ vectordb.Service = (*QdrantClient)(nil)

const (
	defaultBatchSize      = 200 // points per upsert call
	maxConcurrentSearches = 10  // in-flight queries per Search call
	healthCheckTimeout    = 3 * time.Second
)

// NewQdrantClient connects to Qdrant and verifies connectivity with a
// health check, failing fast when the service is unreachable.
//
// Example:
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: qdrant.NewConfig()})
func NewQdrantClient(p QdrantParams) (*QdrantClient, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	qc := &QdrantClient{
		api:      api,
		cfg:      *cfg,
		logger:   p.Logger,
		observer: p.Observer,
	}

	if err := qc.HealthCheck(context.Background()); err != nil {
		_ = api.Close()
		return nil, err
	}
	return qc, nil
}

// HealthCheck calls Qdrant's health endpoint.
func (c *QdrantClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: health check failed: %w", err)
	}

	c.logInfo(ctx, "qdrant health check passed", map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// Client returns the underlying Qdrant SDK client.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Close closes the gRPC connection.
func (c *QdrantClient) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}

// withTimeout applies cfg.Timeout when ctx has no deadline of its own.
func (c *QdrantClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

func (c *QdrantClient) observeOperation(operation, collection string, start time.Time, err error, metadata map[string]interface{}) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: "qdrant",
		Operation: operation,
		Resource:  collection,
		Duration:  time.Since(start),
		Error:     err,
		Metadata:  metadata,
	})
}

func (c *QdrantClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}
