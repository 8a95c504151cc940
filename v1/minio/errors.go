package minio

import (
	"errors"

	"github.com/minio/minio-go/v7"
)

var (
	// ErrConnectionFailed is returned when the client is not connected.
	ErrConnectionFailed = errors.New("minio: connection failed")

	// ErrEmptyEndpoint is returned by NewSource when no endpoint is configured.
	ErrEmptyEndpoint = errors.New("minio: endpoint cannot be empty")

	// ErrEmptyBucket is returned by NewSource when no bucket is configured.
	ErrEmptyBucket = errors.New("minio: bucket name is empty")

	// ErrBucketNotFound is returned when the bucket is missing and creation is disabled.
	ErrBucketNotFound = errors.New("minio: bucket does not exist")

	// ErrEmptyKey is returned for blank object keys.
	ErrEmptyKey = errors.New("minio: object key is empty")

	// ErrObjectNotFound is returned when the key does not exist.
	ErrObjectNotFound = errors.New("minio: object not found")
)

// translateError maps S3 "not found" responses onto ErrObjectNotFound.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchObject":
		return errors.Join(ErrObjectNotFound, err)
	}
	return err
}
