// Package logger provides structured logging for the gateway client packages.
//
// The logger package wraps Uber's zap with a small map-based API and
// context-aware variants that attach OpenTelemetry trace and span IDs.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FX module: Provides both *LoggerClient and Logger interface for dependency injection
//
// The gateway, files and tracing packages declare their own narrow Logger
// interfaces (InfoWithContext, WarnWithContext, ErrorWithContext) which
// *LoggerClient satisfies, so they never depend on zap directly.
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "gatewayctl",
//		EnableTracing: true,
//	})
//
//	log.Info("client configured", nil, map[string]interface{}{
//		"base_url": cfg.BaseURL,
//	})
//
//	// Includes trace_id and span_id when ctx carries a valid span
//	log.WarnWithContext(ctx, "retrying gateway request", err, map[string]interface{}{
//		"attempt": 2,
//	})
//
//	gw, err := gateway.NewClient(cfg, gateway.WithLogger(log))
//
// # FX Module Integration
//
//	app := fx.New(
//		fx.Supply(logger.Config{Level: logger.Info}),
//		logger.FXModule, // Provides *LoggerClient and logger.Logger
//		// other modules...
//	)
//
// # Output Format
//
// Entries are JSON with an ISO8601 "timestamp", a capitalized "level",
// the caller and the "pid" and "service" fields:
//
//	{"level":"WARN","timestamp":"2024-05-01T10:00:00.000Z","caller":"gateway/executor.go:47",
//	 "msg":"retrying gateway request","pid":4711,"service":"gatewayctl","attempt":2}
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package logger
