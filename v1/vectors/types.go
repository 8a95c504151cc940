package vectors

import "time"

// Provider is a vector database registered with the gateway.
type Provider struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"` // "qdrant", "pgvector", "pinecone", ...
	Config    map[string]any `json:"config,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitzero"`
	UpdatedAt time.Time      `json:"updated_at,omitzero"`
}

// CreateProviderRequest is the body of POST /vector-providers.
type CreateProviderRequest struct {
	Name   string         `json:"name"`
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
}

// UpdateProviderRequest is the body of PATCH /vector-providers/{id}.
// Nil fields are left unchanged.
type UpdateProviderRequest struct {
	Name   *string        `json:"name,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// Index is a collection of vectors inside a provider.
type Index struct {
	ID          string    `json:"id"`
	ProviderID  string    `json:"provider_id"`
	Name        string    `json:"name"`
	Dimension   int       `json:"dimension"`
	Metric      string    `json:"metric"` // "cosine", "dot", "euclidean"
	Status      string    `json:"status,omitempty"`
	VectorCount uint64    `json:"vector_count,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// CreateIndexRequest is the body of POST /vector-providers/{id}/indexes.
type CreateIndexRequest struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric,omitempty"`
}

// Vector is one stored embedding.
type Vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UpsertResult reports how many vectors were written.
type UpsertResult struct {
	UpsertedCount int `json:"upserted_count"`
}

// QueryRequest is the body of POST /vector-indexes/{id}/query.
type QueryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"top_k"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeValues   bool           `json:"include_values,omitempty"`
	IncludeMetadata bool           `json:"include_metadata,omitempty"`
}

// QueryResult holds the nearest neighbours, best match first.
type QueryResult struct {
	Matches []Match `json:"matches"`
}

// Match is one query hit.
type Match struct {
	ID       string         `json:"id"`
	Score    float32        `json:"score"`
	Values   []float32      `json:"values,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}
