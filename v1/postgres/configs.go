package postgres

import (
	"context"
	"os"
	"time"
)

// Config holds the connection settings of the session archive.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails

	// AutoMigrate creates or updates the archive tables on connect.
	AutoMigrate bool
}

// Connection identifies the database server and credentials.
type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string

	// SSLMode is passed through to libpq, e.g. "disable" or "require".
	SSLMode string
}

// ConnectionDetails tunes the connection pool. Zero values select the
// package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewConfig reads the POSTGRES_* environment variables.
func NewConfig() Config {
	cfg := Config{
		Connection: Connection{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DbName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		AutoMigrate: os.Getenv("POSTGRES_AUTO_MIGRATE") == "true",
	}
	if cfg.Connection.Port == "" {
		cfg.Connection.Port = "5432"
	}
	if cfg.Connection.SSLMode == "" {
		cfg.Connection.SSLMode = "disable"
	}
	return cfg
}

// Logger is an interface that matches the v1/logger.LoggerClient context-aware methods.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
