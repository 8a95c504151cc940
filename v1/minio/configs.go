package minio

import (
	"os"
	"strconv"
)

// Config defines the settings for a MinIO/S3 object source.
type Config struct {
	Connection ConnectionConfig `yaml:"connection"`
}

// ConnectionConfig contains MinIO server connection details.
type ConnectionConfig struct {
	Endpoint        string `yaml:"endpoint" env:"MINIO_ENDPOINT"`                   // e.g. "localhost:9000"
	AccessKeyID     string `yaml:"access_key_id" env:"MINIO_ACCESS_KEY_ID"`         // MinIO access key
	SecretAccessKey string `yaml:"secret_access_key" env:"MINIO_SECRET_ACCESS_KEY"` // MinIO secret key
	UseSSL          bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`                     // "https" when true
	BucketName      string `yaml:"bucket_name" env:"MINIO_BUCKET_NAME"`             // bucket objects are read from
	Region          string `yaml:"region" env:"MINIO_REGION"`                       // e.g. "us-east-1"

	// AccessBucketCreation creates BucketName on startup when it is missing.
	AccessBucketCreation bool `yaml:"access_bucket_creation" env:"MINIO_ACCESS_BUCKET_CREATION"`
}

// NewConfig reads the connection settings from MINIO_* environment variables.
func NewConfig() *Config {
	cfg := &Config{
		Connection: ConnectionConfig{
			Endpoint:        os.Getenv("MINIO_ENDPOINT"),
			AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("MINIO_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("MINIO_BUCKET_NAME"),
			Region:          os.Getenv("MINIO_REGION"),
		},
	}
	if b, err := strconv.ParseBool(os.Getenv("MINIO_USE_SSL")); err == nil {
		cfg.Connection.UseSSL = b
	}
	if b, err := strconv.ParseBool(os.Getenv("MINIO_ACCESS_BUCKET_CREATION")); err == nil {
		cfg.Connection.AccessBucketCreation = b
	}
	return cfg
}
