package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
)

const embeddingsPath = gateway.APIPrefix + "/embeddings"

// Service exposes the gateway's OpenAI-compatible embeddings endpoint.
type Service struct {
	transport gateway.Transport
}

// NewService returns an embedding Service that issues calls through t.
func NewService(t gateway.Transport) *Service {
	return &Service{transport: t}
}

// Create sends req as is and returns the raw response.
func (s *Service) Create(ctx context.Context, req Request) (*Response, error) {
	var out Response
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   embeddingsPath,
		Body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEmbeddings embeds texts with model and returns the vectors in input
// order. Empty input and a missing model are rejected before any request is made.
func (s *Service) CreateEmbeddings(ctx context.Context, model string, texts ...string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrNoInput
	}
	if model == "" {
		return nil, ErrMissingModel
	}

	resp, err := s.Create(ctx, Request{Model: model, Input: texts})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmptyResponse
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	return resp.Vectors(), nil
}
