package files

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrEmptyID is returned when a bucket ID or object key is empty.
	// No request is sent in that case.
	ErrEmptyID = errors.New("files: id must not be empty")

	// ErrTooLarge is returned by Import when the source object exceeds MaxImportSize.
	ErrTooLarge = errors.New("files: object exceeds import size limit")
)

func segment(name, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyID, name)
	}
	return url.PathEscape(id), nil
}
