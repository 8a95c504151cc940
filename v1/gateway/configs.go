package gateway

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for configuration
const (
	DefaultBaseURL     = "https://api.gateway.aleph-alpha.com"
	DefaultTimeout     = 60 * time.Second
	DefaultMaxRetries  = 3
	DefaultBackoffUnit = time.Second
)

// Config holds the settings shared by every call a Client makes.
//
// A Config is copied into the Client by NewClient and never changes afterwards.
//
// Example (environment):
//
//	cfg := gateway.NewConfig() // GATEWAY_API_TOKEN, GATEWAY_BASE_URL, ...
//
// Example (builder style):
//
//	cfg := gateway.DefaultConfig().
//	    WithAPIToken(os.Getenv("GATEWAY_API_TOKEN")).
//	    WithTimeout(10 * time.Second).
//	    WithMaxRetries(1)
type Config struct {
	// BaseURL is the gateway root, e.g. "https://api.gateway.aleph-alpha.com".
	// Trailing slashes are stripped.
	BaseURL string `yaml:"base_url" env:"GATEWAY_BASE_URL"`

	// APIToken is sent as a bearer credential on every call. Required.
	APIToken string `yaml:"api_token" env:"GATEWAY_API_TOKEN"`

	// Timeout bounds each attempt of an Execute call and the wait for the
	// response headers of a Stream call. Zero means DefaultTimeout.
	Timeout time.Duration `yaml:"-" env:"GATEWAY_TIMEOUT_MS"`

	// MaxRetries is the number of additional attempts after a retryable
	// failure. Zero disables retries.
	MaxRetries int `yaml:"max_retries" env:"GATEWAY_MAX_RETRIES"`
}

// fileConfig is the YAML shape accepted by LoadConfig.
type fileConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIToken   string `yaml:"api_token"`
	TimeoutMS  *int   `yaml:"timeout_ms"`
	MaxRetries *int   `yaml:"max_retries"`
}

// DefaultConfig returns a Config with every optional field set to its default.
// The API token still has to be provided.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
	}
}

// NewConfig reads from environment variables on top of DefaultConfig.
func NewConfig() *Config {
	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg
}

// LoadConfig reads a YAML file and applies environment overrides on top of it.
//
// Example file:
//
//	base_url: https://gateway.internal.example
//	api_token: secret
//	timeout_ms: 30000
//	max_retries: 2
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gateway: failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("gateway: failed to parse config file: %w", err)
	}

	cfg := DefaultConfig()
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	cfg.APIToken = fc.APIToken
	if fc.TimeoutMS != nil {
		cfg.Timeout = time.Duration(*fc.TimeoutMS) * time.Millisecond
	}
	if fc.MaxRetries != nil {
		cfg.MaxRetries = *fc.MaxRetries
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GATEWAY_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("GATEWAY_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("GATEWAY_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Timeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("GATEWAY_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}
}

// Builder-style helpers
func (c *Config) WithBaseURL(baseURL string) *Config {
	c.BaseURL = baseURL
	return c
}

func (c *Config) WithAPIToken(token string) *Config {
	c.APIToken = token
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithMaxRetries(n int) *Config {
	c.MaxRetries = n
	return c
}

// Validate ensures required fields are present and well-formed.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("gateway: config is nil")
	}
	if c.APIToken == "" {
		return ErrMissingAPIToken
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("gateway: timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("gateway: max retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}

// normalized returns a copy with defaults applied to zero-valued fields.
func (c *Config) normalized() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	out.BaseURL = strings.TrimRight(out.BaseURL, "/")
	if out.Timeout == 0 {
		out.Timeout = DefaultTimeout
	}
	return out
}
