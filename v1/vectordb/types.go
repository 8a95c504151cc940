package vectordb

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSearchRequests is returned by Search when called without requests.
	ErrNoSearchRequests = errors.New("vectordb: at least one search request is required")

	// ErrEmptyCollection is returned when a collection name is empty.
	ErrEmptyCollection = errors.New("vectordb: collection name cannot be empty")

	// ErrEmptyVector is returned when a search vector has no dimensions.
	ErrEmptyVector = errors.New("vectordb: vector cannot be empty")

	// ErrInvalidTopK is returned when TopK is not positive.
	ErrInvalidTopK = errors.New("vectordb: topK must be greater than 0")

	// ErrCollectionNotFound is returned when a collection does not exist.
	ErrCollectionNotFound = errors.New("vectordb: collection not found")
)

// SearchRequest represents a single similarity search query.
type SearchRequest struct {
	// CollectionName is the target collection to search in
	CollectionName string `json:"collectionName"`

	// Vector is the query embedding to find similar vectors for
	Vector []float32 `json:"vector"`

	// TopK is the maximum number of results to return
	TopK int `json:"maxResults"`

	// Filter is optional metadata filtering
	Filter *Filter `json:"filter,omitempty"`
}

// Validate checks the fields every backend requires.
func (r SearchRequest) Validate() error {
	switch {
	case r.CollectionName == "":
		return ErrEmptyCollection
	case len(r.Vector) == 0:
		return ErrEmptyVector
	case r.TopK <= 0:
		return ErrInvalidTopK
	}
	return nil
}

// ValidateAll validates every request and reports the first failure with its index.
func ValidateAll(requests []SearchRequest) error {
	if len(requests) == 0 {
		return ErrNoSearchRequests
	}
	for i, r := range requests {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("request [%d]: %w", i, err)
		}
	}
	return nil
}

// SearchResult represents a single search result with its similarity score.
type SearchResult struct {
	// ID is the unique identifier of the matched point
	ID string `json:"id"`

	// Score is the similarity score (higher = more similar for cosine)
	Score float32 `json:"score"`

	// Payload contains the metadata stored with the vector
	Payload map[string]any `json:"payload"`

	// Vector is the stored embedding (only populated if the backend returns it)
	Vector []float32 `json:"vector,omitempty"`

	// CollectionName identifies which collection this result came from
	CollectionName string `json:"collectionName,omitempty"`
}

// EmbeddingInput is the input for inserting vectors into a collection.
type EmbeddingInput struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	VectorSize  int    `json:"vectorSize"`
	Distance    string `json:"distance"` // e.g. "Cosine", "Dot", "Euclid"
	VectorCount uint64 `json:"vectorCount"`
	PointCount  uint64 `json:"pointCount"`
}
