// Package vectordb provides a database-agnostic abstraction for vector
// similarity search.
//
// # Overview
//
// [Service] is implemented by two adapters in this module:
//
//   - vectors.Store, backed by the gateway's managed vector indexes
//   - qdrant.QdrantClient, backed by a self-hosted Qdrant
//
// Application code depends only on the interface:
//
//	type SearchService struct {
//	    db vectordb.Service
//	}
//
//	results, err := s.db.Search(ctx, vectordb.SearchRequest{
//	    CollectionName: "documents",
//	    Vector:         vector,
//	    TopK:           10,
//	    Filter:         vectordb.NewFilter().WithMust(vectordb.Match("status", "published")),
//	})
//
// # Filters
//
// A [Filter] combines Must (AND), Should (OR) and MustNot (NOT) clauses of
// [Condition] values built with [Match], [MatchAny], [MatchExcept] and
// [InRange]. Each adapter translates them into its backend's native form.
package vectordb
