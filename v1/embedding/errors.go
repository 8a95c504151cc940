package embedding

import "errors"

var (
	// ErrNoInput is returned when an embeddings call has no texts.
	ErrNoInput = errors.New("embedding: no texts provided")

	// ErrMissingModel is returned when an embeddings call names no model.
	ErrMissingModel = errors.New("embedding: model is required")

	// ErrEmptyResponse is returned when the gateway answered without data.
	ErrEmptyResponse = errors.New("embedding: embeddings empty data")
)
