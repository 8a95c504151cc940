package metrics

import (
	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
)

// ObserveOperation records one observed operation. It makes *Metrics usable
// as the observer of the gateway client and the storage adapters.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	m.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, outcome(ctx.Error)).Inc()
	m.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Size > 0 {
		m.payloadBytes.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
	if attempt, ok := ctx.Metadata["attempt"].(int); ok && attempt > 0 {
		m.retriesTotal.WithLabelValues(ctx.Component).Inc()
	}
}

// outcome maps an operation error to a low-cardinality label value.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case gateway.IsCancelled(err):
		return "cancelled"
	case gateway.IsTimeout(err):
		return "timeout"
	}

	switch gateway.Classify(err) {
	case gateway.KindAPI:
		return "api_error"
	case gateway.KindTransport:
		return "transport_error"
	default:
		return "error"
	}
}
