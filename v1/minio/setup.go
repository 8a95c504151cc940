package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/files"
	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Source reads and writes objects in one MinIO/S3 bucket. It implements
// files.ObjectSource so objects can be imported into gateway file buckets.
type Source struct {
	client   *minio.Client
	cfg      Config
	observer observability.Observer
	logger   Logger
}

var _ files.ObjectSource = (*Source)(nil)

const connectTimeout = 30 * time.Second

// NewSource connects to MinIO, validates the credentials and makes sure the
// configured bucket exists, creating it when AccessBucketCreation is set.
//
//	src, err := minio.NewSource(minio.Config{Connection: minio.ConnectionConfig{
//	    Endpoint:   "localhost:9000",
//	    BucketName: "exports",
//	}})
//	src = src.WithLogger(logger).WithObserver(observer)
func NewSource(cfg Config) (*Source, error) {
	client, err := connectToMinio(cfg)
	if err != nil {
		return nil, err
	}

	src := &Source{client: client, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := src.validateConnection(ctx); err != nil {
		return nil, fmt.Errorf("minio: failed to validate connection: %w", err)
	}
	if err := src.ensureBucketExists(ctx); err != nil {
		return nil, err
	}
	return src, nil
}

func connectToMinio(cfg Config) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}
	if cfg.Connection.BucketName == "" {
		return nil, ErrEmptyBucket
	}

	client, err := minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: failed to create client: %w", err)
	}
	return client, nil
}

// validateConnection checks the bucket so credentials do not need ListAllMyBuckets.
func (s *Source) validateConnection(ctx context.Context) error {
	if s.client == nil {
		return ErrConnectionFailed
	}
	_, err := s.client.BucketExists(ctx, s.cfg.Connection.BucketName)
	return err
}

func (s *Source) ensureBucketExists(ctx context.Context) error {
	bucket := s.cfg.Connection.BucketName

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio: failed to check if bucket exists, bucket: %v, err: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if !s.cfg.Connection.AccessBucketCreation {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	s.logInfo(ctx, "Bucket does not exist, creating it", map[string]interface{}{
		"bucket": bucket,
		"region": s.cfg.Connection.Region,
	})
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.cfg.Connection.Region}); err != nil {
		return fmt.Errorf("minio: failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (s *Source) Bucket() string {
	return s.cfg.Connection.BucketName
}

// WithObserver attaches an observer for operation metrics.
func (s *Source) WithObserver(observer observability.Observer) *Source {
	s.observer = observer
	return s
}

// WithLogger attaches a context-aware logger.
func (s *Source) WithLogger(logger Logger) *Source {
	s.logger = logger
	return s
}

func (s *Source) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (s *Source) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
