package files

import (
	"context"
	"fmt"
	"io"
)

// MaxImportSize bounds the objects Import will copy, since the upload body
// carries the whole object.
const MaxImportSize = 32 << 20

// Import copies key from src into the gateway bucket bucketID under the same key.
// The source content type is kept when src reports one.
func (s *Service) Import(ctx context.Context, bucketID string, src ObjectSource, key string) (*Object, error) {
	if _, err := segment("bucket", bucketID); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("%w: key", ErrEmptyID)
	}
	if src == nil {
		return nil, fmt.Errorf("files: nil object source")
	}

	rc, info, err := src.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("files: failed to open source object %q: %w", key, err)
	}
	defer rc.Close()

	if info.Size > MaxImportSize {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrTooLarge, key, info.Size)
	}

	content, err := io.ReadAll(io.LimitReader(rc, MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("files: failed to read source object %q: %w", key, err)
	}
	if len(content) > MaxImportSize {
		return nil, fmt.Errorf("%w: %q", ErrTooLarge, key)
	}

	return s.Upload(ctx, bucketID, UploadRequest{
		Key:         key,
		Content:     content,
		ContentType: info.ContentType,
	})
}
