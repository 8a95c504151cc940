package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
	"github.com/segmentio/kafka-go"
)

const (
	headerContentType = "content-type"
	headerEventCount  = "x-event-count"
)

var _ tracing.Ingester = (*Publisher)(nil)

// Ingest publishes session as one JSON message keyed by the session ID.
// It returns once the configured acks have been received.
func (p *Publisher) Ingest(ctx context.Context, session tracing.Session) (_ *tracing.IngestResult, err error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var size int64
	defer func() { p.observeOperation("produce", session.ID, start, err, size) }()

	value, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("kafka: failed to encode session: %w", err)
	}
	size = int64(len(value))

	msg := kafka.Message{
		Key:   []byte(session.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerContentType, Value: []byte("application/json")},
			{Key: headerEventCount, Value: []byte(strconv.Itoa(len(session.Events)))},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logError(ctx, "failed to publish tracing session", err, map[string]interface{}{
			"topic":      p.cfg.Topic,
			"session_id": session.ID,
		})
		return nil, fmt.Errorf("kafka: failed to publish session: %w", err)
	}

	return &tracing.IngestResult{SessionID: session.ID, Accepted: len(session.Events)}, nil
}

func (p *Publisher) observeOperation(operation, key string, start time.Time, err error, size int64) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "kafka",
		Operation:   operation,
		Resource:    p.cfg.Topic,
		SubResource: key,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
	})
}

func (p *Publisher) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
