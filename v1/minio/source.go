package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/files"
	"github.com/minio/minio-go/v7"
)

// Open returns a reader over key along with its size and content type.
func (s *Source) Open(ctx context.Context, key string) (_ io.ReadCloser, _ files.SourceInfo, err error) {
	start := time.Now()
	var size int64
	defer func() { s.observeOperation("get", key, start, err, size) }()

	if key == "" {
		return nil, files.SourceInfo{}, ErrEmptyKey
	}
	if s.client == nil {
		return nil, files.SourceInfo{}, ErrConnectionFailed
	}

	obj, err := s.client.GetObject(ctx, s.cfg.Connection.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, files.SourceInfo{}, fmt.Errorf("minio: failed to get object: %w", translateError(err))
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, files.SourceInfo{}, fmt.Errorf("minio: failed to get object stats: %w", translateError(err))
	}
	size = info.Size

	return obj, files.SourceInfo{Size: info.Size, ContentType: info.ContentType}, nil
}

// Put uploads size bytes from reader under key. A negative size streams
// the reader until EOF.
func (s *Source) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (err error) {
	start := time.Now()
	defer func() { s.observeOperation("put", key, start, err, size) }()

	if key == "" {
		return ErrEmptyKey
	}
	if s.client == nil {
		return ErrConnectionFailed
	}

	if _, err := s.client.PutObject(ctx, s.cfg.Connection.BucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		s.logError(ctx, "failed to put object", err, map[string]interface{}{"key": key})
		return fmt.Errorf("minio: failed to put object: %w", err)
	}
	return nil
}

// Delete removes key from the bucket.
func (s *Source) Delete(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { s.observeOperation("delete", key, start, err, 0) }()

	if key == "" {
		return ErrEmptyKey
	}
	if s.client == nil {
		return ErrConnectionFailed
	}
	if err := s.client.RemoveObject(ctx, s.cfg.Connection.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio: failed to delete object: %w", err)
	}
	return nil
}
