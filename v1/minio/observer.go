package minio

import (
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
)

// observeOperation reports an operation with the bucket as resource and the
// object key as sub-resource.
func (s *Source) observeOperation(operation, key string, start time.Time, err error, size int64) {
	if s == nil || s.observer == nil {
		return
	}
	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "minio",
		Operation:   operation,
		Resource:    s.cfg.Connection.BucketName,
		SubResource: key,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
	})
}
