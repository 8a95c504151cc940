package files

import (
	"context"
	"io"
	"time"
)

// Bucket is a named container for uploaded files.
type Bucket struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// CreateBucketRequest is the body of POST /file-buckets.
type CreateBucketRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Object describes a stored file.
type Object struct {
	Key         string            `json:"key"`
	BucketID    string            `json:"bucket_id,omitempty"`
	Size        int64             `json:"size"`
	ContentType string            `json:"content_type,omitempty"`
	ETag        string            `json:"etag,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at,omitzero"`
}

// ObjectList is one page of objects.
type ObjectList struct {
	Data       []Object `json:"data"`
	NextCursor string   `json:"next_cursor,omitempty"` // Empty on the last page
}

// ListObjectsOptions narrows ListObjects. Zero fields are not sent.
type ListObjectsOptions struct {
	Prefix string
	Limit  int
	Cursor string
}

// UploadRequest describes a file to upload. When ContentType is empty it is
// detected from the content.
type UploadRequest struct {
	Key         string
	Content     []byte
	ContentType string
	Metadata    map[string]string
}

// uploadBody is the wire form of UploadRequest; Content is sent base64-encoded.
type uploadBody struct {
	Key         string            `json:"key"`
	Content     []byte            `json:"content"`
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// objectContent is the response of GET .../objects/{key}/content.
type objectContent struct {
	Object
	Content []byte `json:"content"`
}

type bucketList struct {
	Data []Bucket `json:"data"`
}

// SourceInfo describes an object in an external store.
type SourceInfo struct {
	Size        int64
	ContentType string
}

// ObjectSource is an external object store that Import can copy from.
// minio.Source implements it for MinIO and S3.
type ObjectSource interface {
	// Open returns a reader for key. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, SourceInfo, error)
}
