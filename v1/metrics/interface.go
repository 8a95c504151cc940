package metrics

import (
	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector defines the contract for metrics operations.
type MetricsCollector interface {
	observability.Observer

	// CreateCounter registers a custom counter under the configured namespace.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram registers a custom histogram under the configured namespace.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge registers a custom gauge under the configured namespace.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

var _ MetricsCollector = (*Metrics)(nil)
