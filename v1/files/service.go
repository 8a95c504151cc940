package files

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
)

const bucketsPath = gateway.APIPrefix + "/file-buckets"

// Service exposes file bucket and object operations.
type Service struct {
	transport gateway.Transport
}

// NewService returns a files Service that issues calls through t.
func NewService(t gateway.Transport) *Service {
	return &Service{transport: t}
}

// ── Buckets ──────────────────────────────────────────────────────────────────

// ListBuckets returns every bucket visible to the token.
func (s *Service) ListBuckets(ctx context.Context) ([]Bucket, error) {
	var out bucketList
	if err := s.transport.Execute(ctx, gateway.Request{Path: bucketsPath}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateBucket creates a bucket.
func (s *Service) CreateBucket(ctx context.Context, req CreateBucketRequest) (*Bucket, error) {
	var out Bucket
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   bucketsPath,
		Body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBucket fetches one bucket.
func (s *Service) GetBucket(ctx context.Context, bucketID string) (*Bucket, error) {
	b, err := segment("bucket", bucketID)
	if err != nil {
		return nil, err
	}

	var out Bucket
	if err := s.transport.Execute(ctx, gateway.Request{Path: bucketsPath + "/" + b}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBucket removes a bucket.
func (s *Service) DeleteBucket(ctx context.Context, bucketID string) error {
	b, err := segment("bucket", bucketID)
	if err != nil {
		return err
	}
	return s.transport.Execute(ctx, gateway.Request{Method: http.MethodDelete, Path: bucketsPath + "/" + b}, nil)
}

// ── Objects ──────────────────────────────────────────────────────────────────

// ListObjects returns one page of objects in a bucket. Pass
// ObjectList.NextCursor back as opts.Cursor to fetch the next page.
func (s *Service) ListObjects(ctx context.Context, bucketID string, opts ListObjectsOptions) (*ObjectList, error) {
	b, err := segment("bucket", bucketID)
	if err != nil {
		return nil, err
	}

	query := map[string]any{}
	if opts.Prefix != "" {
		query["prefix"] = opts.Prefix
	}
	if opts.Limit > 0 {
		query["limit"] = opts.Limit
	}
	if opts.Cursor != "" {
		query["cursor"] = opts.Cursor
	}

	var out ObjectList
	if err := s.transport.Execute(ctx, gateway.Request{
		Path:  bucketsPath + "/" + b + "/objects",
		Query: query,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload stores req.Content under req.Key.
func (s *Service) Upload(ctx context.Context, bucketID string, req UploadRequest) (*Object, error) {
	b, err := segment("bucket", bucketID)
	if err != nil {
		return nil, err
	}
	if req.Key == "" {
		return nil, fmt.Errorf("%w: key", ErrEmptyID)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(req.Content)
	}

	var out Object
	if err := s.transport.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   bucketsPath + "/" + b + "/objects",
		Body: uploadBody{
			Key:         req.Key,
			Content:     req.Content,
			ContentType: contentType,
			Metadata:    req.Metadata,
		},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetObject fetches the metadata of one object.
func (s *Service) GetObject(ctx context.Context, bucketID, key string) (*Object, error) {
	path, err := objectPath(bucketID, key)
	if err != nil {
		return nil, err
	}

	var out Object
	if err := s.transport.Execute(ctx, gateway.Request{Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadObject fetches an object's content and metadata.
func (s *Service) DownloadObject(ctx context.Context, bucketID, key string) ([]byte, *Object, error) {
	path, err := objectPath(bucketID, key)
	if err != nil {
		return nil, nil, err
	}

	var out objectContent
	if err := s.transport.Execute(ctx, gateway.Request{Path: path + "/content"}, &out); err != nil {
		return nil, nil, err
	}
	return out.Content, &out.Object, nil
}

// DeleteObject removes one object.
func (s *Service) DeleteObject(ctx context.Context, bucketID, key string) error {
	path, err := objectPath(bucketID, key)
	if err != nil {
		return err
	}
	return s.transport.Execute(ctx, gateway.Request{Method: http.MethodDelete, Path: path}, nil)
}

func objectPath(bucketID, key string) (string, error) {
	b, err := segment("bucket", bucketID)
	if err != nil {
		return "", err
	}
	k, err := segment("key", key)
	if err != nil {
		return "", err
	}
	return bucketsPath + "/" + b + "/objects/" + k, nil
}
