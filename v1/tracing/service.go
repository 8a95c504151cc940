package tracing

import (
	"context"
	"errors"
	"net/http"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
)

const sessionsPath = gateway.APIPrefix + "/tracing/sessions"

var (
	// ErrMissingSessionID is returned when a session has no ID.
	ErrMissingSessionID = errors.New("tracing: session id is required")

	// ErrNoEvents is returned when a session carries no events.
	ErrNoEvents = errors.New("tracing: session has no events")
)

// Ingester accepts tracing sessions. *Service implements it, as do the
// kafka, rabbit and postgres sinks.
type Ingester interface {
	Ingest(ctx context.Context, session Session) (*IngestResult, error)
}

// Validate reports ErrMissingSessionID or ErrNoEvents.
func (s Session) Validate() error {
	if s.ID == "" {
		return ErrMissingSessionID
	}
	if len(s.Events) == 0 {
		return ErrNoEvents
	}
	return nil
}

// Service exposes the tracing ingestion endpoint.
type Service struct {
	transport gateway.Transport
}

// NewService returns a tracing Service that issues calls through t.
func NewService(t gateway.Transport) *Service {
	return &Service{transport: t}
}

var _ Ingester = (*Service)(nil)

// Ingest uploads a session. Sessions without an ID or without events are
// rejected before any request is made.
func (s *Service) Ingest(ctx context.Context, session Session) (*IngestResult, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	var out IngestResult
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   sessionsPath,
		Body:   session,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
