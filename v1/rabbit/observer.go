package rabbit

import (
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
func (p *Publisher) observeOperation(operation string, start time.Time, err error, size int64) {
	if p.observer != nil {
		p.observer.ObserveOperation(observability.OperationContext{
			Component:   "rabbit",
			Operation:   operation,
			Resource:    p.cfg.Channel.ExchangeName,
			SubResource: p.cfg.Channel.RoutingKey,
			Duration:    time.Since(start),
			Error:       err,
			Size:        size,
		})
	}
}
