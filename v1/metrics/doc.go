// Package metrics provides Prometheus-based metrics for the gateway client.
//
// *Metrics implements observability.Observer: attach it to the gateway
// client (or the storage adapters) and every observed operation is counted,
// timed and sized on an isolated registry served at /metrics.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Observer plus custom collector registration
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics and observability.Observer for dependency injection
//
// # Exposed Metrics
//
// With the default "gateway" namespace:
//
//	gateway_operations_total{component,operation,outcome}        counter
//	gateway_operation_duration_seconds{component,operation}      histogram
//	gateway_payload_bytes{component,operation}                   histogram
//	gateway_retries_total{component}                             counter
//
// outcome is one of success, api_error, transport_error, timeout,
// cancelled or error. Every metric also carries the service label.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "gatewayctl",
//	})
//	go m.Server.ListenAndServe()
//
//	gw, err := gateway.NewClient(cfg, gateway.WithObserver(m))
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,  // Optional: startup/shutdown logs
//		metrics.FXModule, // Provides *Metrics and observability.Observer
//		gateway.FXModule, // Picks up the observer
//		fx.Supply(metrics.DefaultConfig()),
//	)
//
// # Configuration
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_NAMESPACE=gateway                  # Prefix for all metric names
//	METRICS_SERVICE_NAME=gatewayctl            # Adds service label to all metrics
//
// # Custom Metrics
//
//	flushes := m.CreateCounter("recorder_flushes_total", "Trace recorder flushes", []string{"result"})
//	flushes.WithLabelValues("ok").Inc()
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
