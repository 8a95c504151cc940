package vectors

import (
	"context"
	"net/http"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
)

const (
	providersPath = gateway.APIPrefix + "/vector-providers"
	indexesPath   = gateway.APIPrefix + "/vector-indexes"
)

// Service exposes vector provider, index and vector management.
type Service struct {
	transport gateway.Transport
}

// NewService returns a vectors Service that issues calls through t.
func NewService(t gateway.Transport) *Service {
	return &Service{transport: t}
}

// ── Providers ────────────────────────────────────────────────────────────────

// ListProviders returns every registered vector provider.
func (s *Service) ListProviders(ctx context.Context) ([]Provider, error) {
	var out listResponse[Provider]
	if err := s.transport.Execute(ctx, gateway.Request{Path: providersPath}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateProvider registers a new vector provider.
func (s *Service) CreateProvider(ctx context.Context, req CreateProviderRequest) (*Provider, error) {
	var out Provider
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   providersPath,
		Body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProvider fetches one provider.
func (s *Service) GetProvider(ctx context.Context, providerID string) (*Provider, error) {
	p, err := segment("provider", providerID)
	if err != nil {
		return nil, err
	}

	var out Provider
	if err := s.transport.Execute(ctx, gateway.Request{Path: providersPath + "/" + p}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProvider changes the name or configuration of a provider.
func (s *Service) UpdateProvider(ctx context.Context, providerID string, req UpdateProviderRequest) (*Provider, error) {
	p, err := segment("provider", providerID)
	if err != nil {
		return nil, err
	}

	var out Provider
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPatch,
		Path:   providersPath + "/" + p,
		Body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProvider removes a provider.
func (s *Service) DeleteProvider(ctx context.Context, providerID string) error {
	p, err := segment("provider", providerID)
	if err != nil {
		return err
	}
	return s.transport.Execute(ctx, gateway.Request{Method: http.MethodDelete, Path: providersPath + "/" + p}, nil)
}

// ── Indexes ──────────────────────────────────────────────────────────────────

// ListIndexes returns the indexes of a provider.
func (s *Service) ListIndexes(ctx context.Context, providerID string) ([]Index, error) {
	p, err := segment("provider", providerID)
	if err != nil {
		return nil, err
	}

	var out listResponse[Index]
	if err := s.transport.Execute(ctx, gateway.Request{Path: providersPath + "/" + p + "/indexes"}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateIndex creates an index inside a provider.
func (s *Service) CreateIndex(ctx context.Context, providerID string, req CreateIndexRequest) (*Index, error) {
	p, err := segment("provider", providerID)
	if err != nil {
		return nil, err
	}

	var out Index
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   providersPath + "/" + p + "/indexes",
		Body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetIndex fetches one index.
func (s *Service) GetIndex(ctx context.Context, providerID, indexID string) (*Index, error) {
	path, err := indexPath(providerID, indexID)
	if err != nil {
		return nil, err
	}

	var out Index
	if err := s.transport.Execute(ctx, gateway.Request{Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteIndex removes an index and all its vectors.
func (s *Service) DeleteIndex(ctx context.Context, providerID, indexID string) error {
	path, err := indexPath(providerID, indexID)
	if err != nil {
		return err
	}
	return s.transport.Execute(ctx, gateway.Request{Method: http.MethodDelete, Path: path}, nil)
}

func indexPath(providerID, indexID string) (string, error) {
	p, err := segment("provider", providerID)
	if err != nil {
		return "", err
	}
	i, err := segment("index", indexID)
	if err != nil {
		return "", err
	}
	return providersPath + "/" + p + "/indexes/" + i, nil
}

// ── Vectors ──────────────────────────────────────────────────────────────────

// Upsert inserts or replaces vectors in an index.
func (s *Service) Upsert(ctx context.Context, indexID string, vectors []Vector) (*UpsertResult, error) {
	i, err := segment("index", indexID)
	if err != nil {
		return nil, err
	}

	var out UpsertResult
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   indexesPath + "/" + i + "/vectors",
		Body:   map[string]any{"vectors": vectors},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Query returns the vectors nearest to req.Vector.
func (s *Service) Query(ctx context.Context, indexID string, req QueryRequest) (*QueryResult, error) {
	i, err := segment("index", indexID)
	if err != nil {
		return nil, err
	}

	var out QueryResult
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   indexesPath + "/" + i + "/query",
		Body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVector fetches one vector by ID.
func (s *Service) GetVector(ctx context.Context, indexID, vectorID string) (*Vector, error) {
	path, err := vectorPath(indexID, vectorID)
	if err != nil {
		return nil, err
	}

	var out Vector
	if err := s.transport.Execute(ctx, gateway.Request{Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVector removes one vector.
func (s *Service) DeleteVector(ctx context.Context, indexID, vectorID string) error {
	path, err := vectorPath(indexID, vectorID)
	if err != nil {
		return err
	}
	return s.transport.Execute(ctx, gateway.Request{Method: http.MethodDelete, Path: path}, nil)
}

// DeleteVectors removes several vectors in one call. An empty ids slice is a no-op.
func (s *Service) DeleteVectors(ctx context.Context, indexID string, ids []string) error {
	i, err := segment("index", indexID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   indexesPath + "/" + i + "/vectors/delete",
		Body:   map[string]any{"ids": ids},
	}, nil)
}

func vectorPath(indexID, vectorID string) (string, error) {
	i, err := segment("index", indexID)
	if err != nil {
		return "", err
	}
	v, err := segment("vector", vectorID)
	if err != nil {
		return "", err
	}
	return indexesPath + "/" + i + "/vectors/" + v, nil
}
