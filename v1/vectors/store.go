package vectors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Aleph-Alpha/gateway-client-go/v1/vectordb"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize      = 200 // vectors per upsert call
	maxConcurrentSearches = 10  // in-flight queries per Search call
	defaultMetric         = "cosine"
)

// Store adapts the indexes of one gateway vector provider to
// vectordb.Service. Collections map to indexes by name.
type Store struct {
	svc        *Service
	providerID string

	mu       sync.Mutex
	indexIDs map[string]string // index name -> index ID
}

// NewStore returns a Store over the indexes of providerID.
func NewStore(svc *Service, providerID string) *Store {
	return &Store{
		svc:        svc,
		providerID: providerID,
		indexIDs:   make(map[string]string),
	}
}

var _ vectordb.Service = (*Store)(nil)

// Search runs every request against its index, at most maxConcurrentSearches
// at a time. Failed requests leave a nil entry and their errors are joined.
func (s *Store) Search(ctx context.Context, requests ...vectordb.SearchRequest) ([][]vectordb.SearchResult, error) {
	if err := vectordb.ValidateAll(requests); err != nil {
		return nil, err
	}

	results := make([][]vectordb.SearchResult, len(requests))
	errs := make([]error, len(requests))

	var g errgroup.Group
	g.SetLimit(maxConcurrentSearches)
	for i, req := range requests {
		g.Go(func() error {
			res, err := s.search(ctx, req)
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

func (s *Store) search(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	indexID, err := s.resolve(ctx, req.CollectionName)
	if err != nil {
		return nil, err
	}

	resp, err := s.svc.Query(ctx, indexID, QueryRequest{
		Vector:          req.Vector,
		TopK:            req.TopK,
		Filter:          FilterToMap(req.Filter),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]vectordb.SearchResult, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		out = append(out, vectordb.SearchResult{
			ID:             m.ID,
			Score:          m.Score,
			Payload:        m.Metadata,
			Vector:         m.Values,
			CollectionName: req.CollectionName,
		})
	}
	return out, nil
}

// Insert upserts inputs in batches of defaultBatchSize.
func (s *Store) Insert(ctx context.Context, collection string, inputs []vectordb.EmbeddingInput) error {
	if len(inputs) == 0 {
		return nil
	}
	indexID, err := s.resolve(ctx, collection)
	if err != nil {
		return err
	}

	for start := 0; start < len(inputs); start += defaultBatchSize {
		end := min(start+defaultBatchSize, len(inputs))

		batch := make([]Vector, 0, end-start)
		for _, in := range inputs[start:end] {
			batch = append(batch, Vector{ID: in.ID, Values: in.Vector, Metadata: in.Payload})
		}
		if _, err := s.svc.Upsert(ctx, indexID, batch); err != nil {
			return fmt.Errorf("vectors: batch upsert failed at [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// Delete removes ids from collection.
func (s *Store) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	indexID, err := s.resolve(ctx, collection)
	if err != nil {
		return err
	}
	return s.svc.DeleteVectors(ctx, indexID, ids)
}

// EnsureCollection creates an index named name unless one exists.
func (s *Store) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	_, err := s.resolve(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, vectordb.ErrCollectionNotFound) {
		return err
	}

	idx, err := s.svc.CreateIndex(ctx, s.providerID, CreateIndexRequest{
		Name:      name,
		Dimension: int(vectorSize),
		Metric:    defaultMetric,
	})
	if err != nil {
		return fmt.Errorf("vectors: failed to create index '%s': %w", name, err)
	}

	s.mu.Lock()
	s.indexIDs[name] = idx.ID
	s.mu.Unlock()
	return nil
}

// GetCollection describes the index named name.
func (s *Store) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	indexID, err := s.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	idx, err := s.svc.GetIndex(ctx, s.providerID, indexID)
	if err != nil {
		return nil, err
	}
	return &vectordb.Collection{
		Name:        idx.Name,
		Status:      idx.Status,
		VectorSize:  idx.Dimension,
		Distance:    idx.Metric,
		VectorCount: idx.VectorCount,
		PointCount:  idx.VectorCount,
	}, nil
}

// ListCollections returns the names of the provider's indexes.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	indexes, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		names = append(names, idx.Name)
	}
	return names, nil
}

func (s *Store) resolve(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", vectordb.ErrEmptyCollection
	}

	s.mu.Lock()
	id, ok := s.indexIDs[name]
	s.mu.Unlock()
	if ok {
		return id, nil
	}

	if _, err := s.refresh(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.indexIDs[name]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s", vectordb.ErrCollectionNotFound, name)
}

func (s *Store) refresh(ctx context.Context) ([]Index, error) {
	indexes, err := s.svc.ListIndexes(ctx, s.providerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, idx := range indexes {
		s.indexIDs[idx.Name] = idx.ID
	}
	return indexes, nil
}

// FilterToMap renders f in the gateway's query filter syntax:
//
//	{"$and": [...], "$or": [...], "$nor": [...]}
//
// where each condition is {"field": value} or {"field": {"$in": [...]}} and so on.
// It returns nil for an empty filter.
func FilterToMap(f *vectordb.Filter) map[string]any {
	if f.IsEmpty() {
		return nil
	}

	out := make(map[string]any, 3)
	for op, conds := range map[string][]vectordb.Condition{
		"$and": f.Must,
		"$or":  f.Should,
		"$nor": f.MustNot,
	} {
		var clauses []any
		for _, c := range conds {
			if expr := conditionExpr(c); expr != nil {
				clauses = append(clauses, map[string]any{c.Field: expr})
			}
		}
		if len(clauses) > 0 {
			out[op] = clauses
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func conditionExpr(c vectordb.Condition) any {
	if strings.TrimSpace(c.Field) == "" {
		return nil
	}

	switch {
	case c.Equals != nil:
		return c.Equals
	case len(c.AnyOf) > 0:
		return map[string]any{"$in": c.AnyOf}
	case len(c.NoneOf) > 0:
		return map[string]any{"$nin": c.NoneOf}
	case !c.Range.IsEmpty():
		r := map[string]any{}
		if c.Range.Gt != nil {
			r["$gt"] = *c.Range.Gt
		}
		if c.Range.Gte != nil {
			r["$gte"] = *c.Range.Gte
		}
		if c.Range.Lt != nil {
			r["$lt"] = *c.Range.Lt
		}
		if c.Range.Lte != nil {
			r["$lte"] = *c.Range.Lte
		}
		return r
	}
	return nil
}
