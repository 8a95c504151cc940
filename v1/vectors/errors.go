package vectors

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrEmptyID is returned when a provider, index or vector ID is empty.
// No request is sent in that case.
var ErrEmptyID = errors.New("vectors: id must not be empty")

// segment validates id and escapes it for use as a single path segment.
func segment(name, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyID, name)
	}
	return url.PathEscape(id), nil
}
