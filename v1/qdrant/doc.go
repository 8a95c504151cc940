// Package qdrant implements vectordb.Service on a self-hosted Qdrant
// instance.
//
// It is the local counterpart of vectors.Store: code written against
// vectordb.Service can switch between the gateway-managed indexes and a
// Qdrant deployment by swapping the fx module.
//
// # Features
//
//   - Health check on construction, failing fast when Qdrant is unreachable
//   - Idempotent collection creation with a configurable distance metric
//   - Batched upserts (200 points per call) that wait for persistence
//   - Concurrent multi-request search with per-request error reporting
//   - Conversion of vectordb.Filter into native Qdrant filters
//
// # Basic Usage
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{
//	    Config: qdrant.FromEndpoint("localhost").WithPort(6334),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.EnsureCollection(ctx, "documents", 1536); err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := client.Search(ctx, vectordb.SearchRequest{
//	    CollectionName: "documents",
//	    Vector:         queryVector,
//	    TopK:           5,
//	    Filter:         vectordb.NewFilter().WithMust(vectordb.Match("lang", "en")),
//	})
//
// # Point IDs
//
// Canonical unsigned integers ("42") are stored as numeric point IDs. Any
// other string is sent as a UUID, which Qdrant rejects unless it parses as one.
//
// # Filters
//
// Equality on strings, booleans and integers maps to keyword, bool and
// integer matches. A non-integral float equality becomes a closed range.
// AnyOf and NoneOf lists must be all strings or all integers; mixed lists
// are dropped.
//
// # FX Module Integration
//
//	app := fx.New(
//	    fx.Supply(qdrant.NewConfig()),
//	    qdrant.FXModule, // provides *QdrantClient and vectordb.Service
//	)
//
// # Configuration
//
// NewConfig reads QDRANT_ENDPOINT, QDRANT_PORT, QDRANT_API_KEY,
// QDRANT_USE_TLS, QDRANT_TIMEOUT, QDRANT_DISTANCE and
// QDRANT_CHECK_COMPATIBILITY on top of DefaultConfig.
package qdrant
