package chat

import (
	"context"
	"net/http"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
)

const completionsPath = gateway.APIPrefix + "/chat/completions"

// Service exposes the chat completion endpoints.
type Service struct {
	transport gateway.Transport
}

// NewService returns a chat Service that issues calls through t.
func NewService(t gateway.Transport) *Service {
	return &Service{transport: t}
}

// Create requests a complete chat completion.
//
// Example:
//
//	resp, err := svc.Create(ctx, chat.CompletionRequest{
//	    Model:    "llama-3.1-8b-instruct",
//	    Messages: []chat.Message{{Role: chat.RoleUser, Content: "Hello"}},
//	})
//	fmt.Println(resp.Text())
func (s *Service) Create(ctx context.Context, req CompletionRequest) (*Completion, error) {
	req.Stream = false

	var out Completion
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   completionsPath,
		Body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStream requests a streaming chat completion. The request is sent
// with "stream": true and the chunks are decoded as they arrive.
//
// Example:
//
//	stream, err := svc.CreateStream(ctx, req)
//	if err != nil {
//	    return err
//	}
//	for chunk, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Delta())
//	}
func (s *Service) CreateStream(ctx context.Context, req CompletionRequest) (*gateway.Stream[CompletionChunk], error) {
	req.Stream = true

	return gateway.StreamAs[CompletionChunk](ctx, s.transport, gateway.Request{
		Method: http.MethodPost,
		Path:   completionsPath,
		Body:   req,
	})
}
