package vectordb

import "context"

// Service is the common interface for vector stores. It lets an application
// switch between the gateway's managed indexes (vectors.Store) and a
// self-hosted Qdrant (qdrant.QdrantClient) without changing its code.
//
// Example usage:
//
//	func NewSearchService(db vectordb.Service) *SearchService {
//	    return &SearchService{db: db}
//	}
type Service interface {
	// Search performs similarity search across one or more requests.
	// Each request can target a different collection with different filters.
	// Returns one []SearchResult per request, in request order. Per-request
	// failures are joined into err; results of successful requests are kept.
	//
	// Example:
	//   results, err := db.Search(ctx,
	//       SearchRequest{CollectionName: "docs", Vector: vec1, TopK: 10},
	//       SearchRequest{CollectionName: "docs", Vector: vec2, TopK: 5, Filter: f},
	//   )
	Search(ctx context.Context, requests ...SearchRequest) ([][]SearchResult, error)

	// Insert adds embeddings to a collection in batches.
	Insert(ctx context.Context, collection string, inputs []EmbeddingInput) error

	// Delete removes points by their IDs from a collection.
	Delete(ctx context.Context, collection string, ids []string) error

	// EnsureCollection creates a collection if it doesn't exist.
	// Safe to call multiple times.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// GetCollection retrieves metadata about a collection.
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// ListCollections returns names of all collections.
	ListCollections(ctx context.Context) ([]string, error)
}
