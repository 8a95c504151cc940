// Package vectors manages the gateway's vector providers, indexes and
// vectors.
//
// The resources form a hierarchy:
//
//	/vector-providers/{providerID}
//	/vector-providers/{providerID}/indexes/{indexID}
//	/vector-indexes/{indexID}/vectors/{vectorID}
//	/vector-indexes/{indexID}/query
//
// Every ID is escaped as a single path segment. An empty ID is rejected
// with ErrEmptyID before any request is sent.
//
//	svc := vectors.NewService(gw)
//	idx, err := svc.CreateIndex(ctx, providerID, vectors.CreateIndexRequest{
//	    Name:      "docs",
//	    Dimension: 1024,
//	})
//	res, err := svc.Query(ctx, idx.ID, vectors.QueryRequest{Vector: v, TopK: 5})
//
// # vectordb adapter
//
// Store implements vectordb.Service on top of one provider, so code written
// against vectordb can move between the gateway and a self-hosted Qdrant.
// Search fans requests out concurrently and converts vectordb filters with
// FilterToMap.
package vectors
