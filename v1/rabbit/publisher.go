package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
	amqp "github.com/rabbitmq/amqp091-go"
)

var _ tracing.Ingester = (*Publisher)(nil)

// Ingest publishes session as a persistent JSON message and waits for the
// broker confirmation. The session ID is used as the AMQP message ID.
func (p *Publisher) Ingest(ctx context.Context, session tracing.Session) (_ *tracing.IngestResult, err error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var size int64
	defer func() {
		p.observeOperation("produce", start, err, size)
	}()

	body, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("rabbit: failed to encode session: %w", err)
	}
	size = int64(len(body))

	msg := amqp.Publishing{
		ContentType:  p.cfg.Channel.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    session.ID,
		Timestamp:    time.Now().UTC(),
		Type:         "tracing.session",
		Headers: amqp.Table{
			"x-event-count": int32(len(session.Events)),
		},
		Body: body,
	}

	p.mu.RLock()
	ch := p.ch
	if ch == nil {
		p.mu.RUnlock()
		return nil, ErrChannelClosed
	}
	err = ch.publish(ctx, p.cfg.Channel.ExchangeName, p.cfg.Channel.RoutingKey, msg)
	p.mu.RUnlock()

	if err != nil {
		err = translateError(err)
		p.logError(ctx, "failed to publish tracing session", err, map[string]interface{}{
			"exchange":   p.cfg.Channel.ExchangeName,
			"session_id": session.ID,
		})
		return nil, fmt.Errorf("rabbit: failed to publish session: %w", err)
	}

	return &tracing.IngestResult{SessionID: session.ID, Accepted: len(session.Events)}, nil
}

func (p *Publisher) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
