package kafka

import (
	"os"
	"strings"
	"time"
)

// Default values for configuration
const (
	DefaultTopic        = "gateway.tracing.sessions"
	DefaultRequiredAcks = -1 // wait for all in-sync replicas
	DefaultMaxAttempts  = 3
	DefaultWriteTimeout = 10 * time.Second
	DefaultBatchTimeout = 100 * time.Millisecond
)

// Config defines the settings of the tracing session publisher.
type Config struct {
	// Brokers lists the bootstrap brokers, e.g. ["localhost:9092"].
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`

	// Topic receives one message per ingested session.
	Topic string `yaml:"topic" env:"KAFKA_TOPIC"`

	// RequiredAcks is -1 (all replicas), 0 (none) or 1 (leader only).
	RequiredAcks int `yaml:"required_acks"`

	// MaxAttempts bounds the delivery attempts of one write.
	MaxAttempts int `yaml:"max_attempts"`

	// WriteTimeout bounds a single write.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// BatchTimeout is how long the writer waits to fill a batch.
	BatchTimeout time.Duration `yaml:"batch_timeout"`

	// CompressionCodec is one of "gzip", "snappy", "lz4", "zstd" or empty.
	CompressionCodec string `yaml:"compression_codec"`

	TLS  TLSConfig  `yaml:"tls"`
	SASL SASLConfig `yaml:"sasl"`
}

// TLSConfig enables TLS towards the brokers.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled"`
	CACertPath         string `yaml:"ca_cert_path"`
	ClientCertPath     string `yaml:"client_cert_path"`
	ClientKeyPath      string `yaml:"client_key_path"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// SASLConfig enables SASL authentication.
type SASLConfig struct {
	Enabled bool `yaml:"enabled"`

	// Mechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	Mechanism string `yaml:"mechanism"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

// NewConfig reads KAFKA_BROKERS (comma separated) and KAFKA_TOPIC.
func NewConfig() *Config {
	cfg := &Config{Topic: os.Getenv("KAFKA_TOPIC")}
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.Brokers = append(cfg.Brokers, b)
		}
	}
	return cfg
}

// withDefaults fills zero-valued fields.
func (c Config) withDefaults() Config {
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = DefaultRequiredAcks
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
	return c
}
