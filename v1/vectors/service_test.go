package vectors

import (
	"context"
	"net/http"
	"testing"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway/gatewaytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRoutes(t *testing.T) {
	name := "renamed"
	tests := []struct {
		name   string
		call   func(ctx context.Context, s *Service) error
		method string
		path   string
		body   map[string]any
	}{
		{
			name:   "list providers",
			call:   func(ctx context.Context, s *Service) error { _, err := s.ListProviders(ctx); return err },
			method: http.MethodGet,
			path:   "/api/client/v1/vector-providers",
		},
		{
			name: "create provider",
			call: func(ctx context.Context, s *Service) error {
				_, err := s.CreateProvider(ctx, CreateProviderRequest{Name: "main", Type: "qdrant"})
				return err
			},
			method: http.MethodPost,
			path:   "/api/client/v1/vector-providers",
			body:   map[string]any{"name": "main", "type": "qdrant"},
		},
		{
			name:   "get provider escapes id",
			call:   func(ctx context.Context, s *Service) error { _, err := s.GetProvider(ctx, "a/b c"); return err },
			method: http.MethodGet,
			path:   "/api/client/v1/vector-providers/a%2Fb%20c",
		},
		{
			name: "update provider",
			call: func(ctx context.Context, s *Service) error {
				_, err := s.UpdateProvider(ctx, "p1", UpdateProviderRequest{Name: &name})
				return err
			},
			method: http.MethodPatch,
			path:   "/api/client/v1/vector-providers/p1",
			body:   map[string]any{"name": "renamed"},
		},
		{
			name:   "delete provider",
			call:   func(ctx context.Context, s *Service) error { return s.DeleteProvider(ctx, "p1") },
			method: http.MethodDelete,
			path:   "/api/client/v1/vector-providers/p1",
		},
		{
			name:   "list indexes",
			call:   func(ctx context.Context, s *Service) error { _, err := s.ListIndexes(ctx, "p1"); return err },
			method: http.MethodGet,
			path:   "/api/client/v1/vector-providers/p1/indexes",
		},
		{
			name: "create index",
			call: func(ctx context.Context, s *Service) error {
				_, err := s.CreateIndex(ctx, "p1", CreateIndexRequest{Name: "docs", Dimension: 3})
				return err
			},
			method: http.MethodPost,
			path:   "/api/client/v1/vector-providers/p1/indexes",
			body:   map[string]any{"name": "docs", "dimension": float64(3)},
		},
		{
			name:   "get index",
			call:   func(ctx context.Context, s *Service) error { _, err := s.GetIndex(ctx, "p1", "i1"); return err },
			method: http.MethodGet,
			path:   "/api/client/v1/vector-providers/p1/indexes/i1",
		},
		{
			name:   "delete index",
			call:   func(ctx context.Context, s *Service) error { return s.DeleteIndex(ctx, "p1", "i1") },
			method: http.MethodDelete,
			path:   "/api/client/v1/vector-providers/p1/indexes/i1",
		},
		{
			name: "upsert",
			call: func(ctx context.Context, s *Service) error {
				_, err := s.Upsert(ctx, "i1", []Vector{{ID: "v1", Values: []float32{1}}})
				return err
			},
			method: http.MethodPost,
			path:   "/api/client/v1/vector-indexes/i1/vectors",
			body:   map[string]any{"vectors": []any{map[string]any{"id": "v1", "values": []any{float64(1)}}}},
		},
		{
			name: "query",
			call: func(ctx context.Context, s *Service) error {
				_, err := s.Query(ctx, "i1", QueryRequest{Vector: []float32{0.5}, TopK: 2, IncludeMetadata: true})
				return err
			},
			method: http.MethodPost,
			path:   "/api/client/v1/vector-indexes/i1/query",
			body:   map[string]any{"vector": []any{0.5}, "top_k": float64(2), "include_metadata": true},
		},
		{
			name:   "get vector",
			call:   func(ctx context.Context, s *Service) error { _, err := s.GetVector(ctx, "i1", "v1"); return err },
			method: http.MethodGet,
			path:   "/api/client/v1/vector-indexes/i1/vectors/v1",
		},
		{
			name:   "delete vector",
			call:   func(ctx context.Context, s *Service) error { return s.DeleteVector(ctx, "i1", "v1") },
			method: http.MethodDelete,
			path:   "/api/client/v1/vector-indexes/i1/vectors/v1",
		},
		{
			name:   "delete vectors",
			call:   func(ctx context.Context, s *Service) error { return s.DeleteVectors(ctx, "i1", []string{"a", "b"}) },
			method: http.MethodPost,
			path:   "/api/client/v1/vector-indexes/i1/vectors/delete",
			body:   map[string]any{"ids": []any{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &gatewaytest.Transport{}
			require.NoError(t, tt.call(context.Background(), NewService(transport)))

			call := transport.Last()
			method := call.Request.Method
			if method == "" {
				method = http.MethodGet
			}
			assert.Equal(t, tt.method, method)
			assert.Equal(t, tt.path, call.Request.Path)
			if tt.body != nil {
				assert.Equal(t, tt.body, call.Body())
			}
		})
	}
}

func TestEmptyIDsFailBeforeIO(t *testing.T) {
	transport := &gatewaytest.Transport{}
	svc := NewService(transport)
	ctx := context.Background()

	_, err := svc.GetProvider(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = svc.UpdateProvider(ctx, "", UpdateProviderRequest{})
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, svc.DeleteProvider(ctx, ""), ErrEmptyID)
	_, err = svc.ListIndexes(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = svc.GetIndex(ctx, "p1", "")
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, svc.DeleteIndex(ctx, "", "i1"), ErrEmptyID)
	_, err = svc.Upsert(ctx, "", nil)
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = svc.Query(ctx, "", QueryRequest{})
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = svc.GetVector(ctx, "i1", "")
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, svc.DeleteVector(ctx, "", "v1"), ErrEmptyID)
	assert.ErrorIs(t, svc.DeleteVectors(ctx, "", []string{"a"}), ErrEmptyID)

	assert.Empty(t, transport.Calls())
}

func TestDeleteVectorsWithoutIDsIsNoop(t *testing.T) {
	transport := &gatewaytest.Transport{}
	require.NoError(t, NewService(transport).DeleteVectors(context.Background(), "i1", nil))
	assert.Empty(t, transport.Calls())
}

func TestListDecodesEnvelope(t *testing.T) {
	svc := NewService(&gatewaytest.Transport{
		Respond: func(gateway.Request) (any, error) {
			return map[string]any{"data": []any{
				map[string]any{"id": "p1", "name": "main", "type": "qdrant"},
				map[string]any{"id": "p2", "name": "backup", "type": "pgvector"},
			}}, nil
		},
	})

	providers, err := svc.ListProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, Provider{ID: "p2", Name: "backup", Type: "pgvector"}, providers[1])
}
