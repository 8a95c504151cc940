package qdrant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/vectordb"
	qdrant "github.com/qdrant/go-client/qdrant"
	"golang.org/x/sync/errgroup"
)

// EnsureCollection creates name with vectors of vectorSize unless it exists.
func (c *QdrantClient) EnsureCollection(ctx context.Context, name string, vectorSize uint64) (err error) {
	if name == "" {
		return vectordb.ErrEmptyCollection
	}
	start := time.Now()
	defer func() { c.observeOperation("ensure_collection", name, start, err, nil) }()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: failed to list collections: %w", err)
	}
	if slices.Contains(collections, name) {
		return nil
	}

	if err := c.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: parseDistance(c.cfg.Distance),
		}),
	}); err != nil {
		return fmt.Errorf("qdrant: failed to create collection '%s': %w", name, err)
	}

	c.logInfo(ctx, "qdrant collection created", map[string]interface{}{"collection": name, "vector_size": vectorSize})
	return nil
}

// Insert upserts inputs in batches of defaultBatchSize and waits for each
// batch to be persisted.
func (c *QdrantClient) Insert(ctx context.Context, collection string, inputs []vectordb.EmbeddingInput) (err error) {
	if collection == "" {
		return vectordb.ErrEmptyCollection
	}
	if len(inputs) == 0 {
		return nil
	}
	start := time.Now()
	defer func() {
		c.observeOperation("insert", collection, start, err, map[string]interface{}{"points": len(inputs)})
	}()

	for from := 0; from < len(inputs); from += defaultBatchSize {
		to := min(from+defaultBatchSize, len(inputs))

		points, err := toPoints(inputs[from:to])
		if err != nil {
			return err
		}
		if err := c.upsert(ctx, collection, points); err != nil {
			return fmt.Errorf("qdrant: batch upsert failed at [%d:%d]: %w", from, to, err)
		}
	}
	return nil
}

func (c *QdrantClient) upsert(ctx context.Context, collection string, points []*qdrant.PointStruct) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	wait := true
	_, err := c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           &wait,
	})
	return err
}

// Delete removes points by ID and waits for completion.
func (c *QdrantClient) Delete(ctx context.Context, collection string, ids []string) (err error) {
	if collection == "" {
		return vectordb.ErrEmptyCollection
	}
	if len(ids) == 0 {
		return nil
	}
	start := time.Now()
	defer func() {
		c.observeOperation("delete", collection, start, err, map[string]interface{}{"points": len(ids)})
	}()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, toPointID(id))
	}

	wait := true
	if _, err := c.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: pointIDs},
			},
		},
		Wait: &wait,
	}); err != nil {
		return fmt.Errorf("qdrant: delete failed: %w", err)
	}
	return nil
}

// GetCollection describes one collection.
func (c *QdrantClient) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	if name == "" {
		return nil, vectordb.ErrEmptyCollection
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to get collection '%s': %w", name, err)
	}

	size, distance := extractVectorDetails(info)
	return &vectordb.Collection{
		Name:        name,
		Status:      info.GetStatus().String(),
		VectorSize:  size,
		Distance:    distance,
		VectorCount: derefUint64(info.IndexedVectorsCount),
		PointCount:  derefUint64(info.PointsCount),
	}, nil
}

// ListCollections returns the names of all collections.
func (c *QdrantClient) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to list collections: %w", err)
	}
	return names, nil
}

// Search runs every request concurrently, at most maxConcurrentSearches at a
// time. Failed requests leave a nil entry and their errors are joined.
func (c *QdrantClient) Search(ctx context.Context, requests ...vectordb.SearchRequest) ([][]vectordb.SearchResult, error) {
	if err := vectordb.ValidateAll(requests); err != nil {
		return nil, err
	}

	results := make([][]vectordb.SearchResult, len(requests))
	errs := make([]error, len(requests))

	var g errgroup.Group
	g.SetLimit(maxConcurrentSearches)
	for i, req := range requests {
		g.Go(func() error {
			res, err := c.search(ctx, req)
			if err != nil {
				errs[i] = fmt.Errorf("request [%d] search failed: %w", i, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

func (c *QdrantClient) search(ctx context.Context, req vectordb.SearchRequest) (res []vectordb.SearchResult, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation("search", req.CollectionName, start, err, map[string]interface{}{"results": len(res)})
	}()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	limit := uint64(req.TopK)
	points, err := c.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: req.CollectionName,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         buildFilter(req.Filter),
	})
	if err != nil {
		return nil, err
	}
	return parseSearchResults(req.CollectionName, points)
}
