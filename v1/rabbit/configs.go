package rabbit

import (
	"context"
	"os"
	"strconv"
)

// Default values for configuration
const (
	DefaultExchangeName = "gateway.tracing"
	DefaultExchangeType = "topic"
	DefaultRoutingKey   = "sessions"
	DefaultContentType  = "application/json"
)

// Config defines the top-level configuration structure for the RabbitMQ publisher.
type Config struct {
	// Connection contains the settings needed to establish a connection to the RabbitMQ server
	Connection Connection

	// Channel contains the exchange and routing settings sessions are published with
	Channel Channel
}

// Connection contains the configuration parameters needed to establish
// a connection to a RabbitMQ server, including authentication and TLS settings.
type Connection struct {
	// Host is the RabbitMQ server hostname or IP address
	Host string

	// Port is the RabbitMQ server port (typically 5672 for non-SSL, 5671 for SSL)
	Port uint

	// User is the RabbitMQ username for authentication
	User string

	// Password is the RabbitMQ password for authentication
	Password string

	// IsSSLEnabled determines whether to use SSL/TLS for the connection
	IsSSLEnabled bool

	// UseCert determines whether to use client certificate authentication
	UseCert bool

	CACertPath     string
	ClientCertPath string
	ClientKeyPath  string

	// ServerName is the server name to use for TLS verification
	ServerName string
}

// Channel contains the exchange, routing and queue settings.
type Channel struct {
	// ExchangeName is the exchange sessions are published to
	ExchangeName string

	// ExchangeType is one of "direct", "fanout", "topic" or "headers"
	ExchangeType string

	// RoutingKey is attached to every published session
	RoutingKey string

	// QueueName, when set together with DeclareTopology, is declared and
	// bound to the exchange with RoutingKey
	QueueName string

	// DeclareTopology declares the exchange (and queue) on connect. Leave it
	// false when the topology is managed elsewhere.
	DeclareTopology bool

	// ContentType specifies the MIME type of published messages
	ContentType string
}

// NewConfig reads the RABBITMQ_* environment variables.
func NewConfig() Config {
	port, _ := strconv.ParseUint(os.Getenv("RABBITMQ_PORT"), 10, 32)
	if port == 0 {
		port = 5672
	}
	return Config{
		Connection: Connection{
			Host:     os.Getenv("RABBITMQ_HOST"),
			Port:     uint(port),
			User:     os.Getenv("RABBITMQ_USER"),
			Password: os.Getenv("RABBITMQ_PASSWORD"),
		},
		Channel: Channel{
			ExchangeName: os.Getenv("RABBITMQ_EXCHANGE"),
			RoutingKey:   os.Getenv("RABBITMQ_ROUTING_KEY"),
			QueueName:    os.Getenv("RABBITMQ_QUEUE"),
		},
	}
}

// withDefaults fills zero-valued channel fields.
func (c Config) withDefaults() Config {
	if c.Channel.ExchangeName == "" {
		c.Channel.ExchangeName = DefaultExchangeName
	}
	if c.Channel.ExchangeType == "" {
		c.Channel.ExchangeType = DefaultExchangeType
	}
	if c.Channel.RoutingKey == "" {
		c.Channel.RoutingKey = DefaultRoutingKey
	}
	if c.Channel.ContentType == "" {
		c.Channel.ContentType = DefaultContentType
	}
	return c
}

// Logger is an interface that matches the v1/logger.LoggerClient context-aware methods.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
