package qdrant

import (
	"os"
	"strconv"
	"time"
)

// Config holds connection and behavior settings for the Qdrant client.
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("localhost").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Connect over TLS.
	UseTLS bool `yaml:"use_tls" env:"QDRANT_USE_TLS"`

	// Per-operation timeout applied when the caller's context has no deadline.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Distance metric for collections created by EnsureCollection:
	// "Cosine", "Dot", "Euclid" or "Manhattan".
	Distance string `yaml:"distance" env:"QDRANT_DISTANCE"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

const defaultPort = 6334

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               defaultPort,
		Timeout:            5 * time.Second,
		Distance:           "Cosine",
		CheckCompatibility: true,
	}
}

// NewConfig returns DefaultConfig overridden by QDRANT_* environment variables.
func NewConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("QDRANT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if n, err := strconv.Atoi(os.Getenv("QDRANT_PORT")); err == nil && n > 0 {
		cfg.Port = n
	}
	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
	if b, err := strconv.ParseBool(os.Getenv("QDRANT_USE_TLS")); err == nil {
		cfg.UseTLS = b
	}
	if d, err := time.ParseDuration(os.Getenv("QDRANT_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if v := os.Getenv("QDRANT_DISTANCE"); v != "" {
		cfg.Distance = v
	}
	if b, err := strconv.ParseBool(os.Getenv("QDRANT_CHECK_COMPATIBILITY")); err == nil {
		cfg.CheckCompatibility = b
	}
	return cfg
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// Builder-style helpers
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithDistance(distance string) *Config {
	c.Distance = distance
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
