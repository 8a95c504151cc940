package qdrant

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/gateway-client-go/v1/vectordb"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// ── Filter Conversion ────────────────────────────────────────────────────────

// buildFilter converts a vectordb.Filter into a Qdrant filter. Conditions
// that cannot be expressed (unsupported value types, empty ranges) are
// dropped. An empty filter yields nil.
func buildFilter(f *vectordb.Filter) *qdrant.Filter {
	if f.IsEmpty() {
		return nil
	}

	out := &qdrant.Filter{
		Must:    convertConditions(f.Must),
		Should:  convertConditions(f.Should),
		MustNot: convertConditions(f.MustNot),
	}
	if len(out.Must) == 0 && len(out.Should) == 0 && len(out.MustNot) == 0 {
		return nil
	}
	return out
}

func convertConditions(conds []vectordb.Condition) []*qdrant.Condition {
	var out []*qdrant.Condition
	for _, c := range conds {
		if c.Field == "" {
			continue
		}
		out = append(out, convertCondition(c)...)
	}
	return out
}

func convertCondition(c vectordb.Condition) []*qdrant.Condition {
	var out []*qdrant.Condition
	if c.Equals != nil {
		if cond := convertMatch(c.Field, c.Equals); cond != nil {
			out = append(out, cond)
		}
	}
	if len(c.AnyOf) > 0 {
		if cond := convertMatchAny(c.Field, c.AnyOf); cond != nil {
			out = append(out, cond)
		}
	}
	if len(c.NoneOf) > 0 {
		if cond := convertMatchExcept(c.Field, c.NoneOf); cond != nil {
			out = append(out, cond)
		}
	}
	if !c.Range.IsEmpty() {
		out = append(out, qdrant.NewRange(c.Field, &qdrant.Range{
			Gt:  c.Range.Gt,
			Gte: c.Range.Gte,
			Lt:  c.Range.Lt,
			Lte: c.Range.Lte,
		}))
	}
	return out
}

func convertMatch(key string, value any) *qdrant.Condition {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(key, v)
	case bool:
		return qdrant.NewMatchBool(key, v)
	case float32:
		return matchFloat(key, float64(v))
	case float64:
		// JSON numbers decode as float64
		return matchFloat(key, v)
	}
	if n, ok := toInt64(value); ok {
		return qdrant.NewMatchInt(key, n)
	}
	return nil
}

// matchFloat matches integral values exactly and others by a closed range.
func matchFloat(key string, v float64) *qdrant.Condition {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return qdrant.NewMatchInt(key, int64(v))
	}
	return qdrant.NewRange(key, &qdrant.Range{Gte: &v, Lte: &v})
}

func convertMatchAny(key string, values []any) *qdrant.Condition {
	if strs, ok := toStrings(values); ok {
		return qdrant.NewMatchKeywords(key, strs...)
	}
	if ints, ok := toInt64s(values); ok {
		return qdrant.NewMatchInts(key, ints...)
	}
	return nil
}

func convertMatchExcept(key string, values []any) *qdrant.Condition {
	if strs, ok := toStrings(values); ok {
		return qdrant.NewMatchExceptKeywords(key, strs...)
	}
	if ints, ok := toInt64s(values); ok {
		return qdrant.NewMatchExceptInts(key, ints...)
	}
	return nil
}

func toStrings(values []any) ([]string, bool) {
	out := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

func toInt64s(values []any) ([]int64, bool) {
	out := make([]int64, len(values))
	for i, v := range values {
		n, ok := toInt64(v)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// ── Point Conversion ─────────────────────────────────────────────────────────

// toPoints converts embedding inputs into Qdrant points.
func toPoints(inputs []vectordb.EmbeddingInput) ([]*qdrant.PointStruct, error) {
	points := make([]*qdrant.PointStruct, 0, len(inputs))
	for i, e := range inputs {
		if e.ID == "" {
			return nil, fmt.Errorf("qdrant: input [%d] has an empty id", i)
		}
		if len(e.Vector) == 0 {
			return nil, fmt.Errorf("qdrant: input [%d]: %w", i, vectordb.ErrEmptyVector)
		}
		points = append(points, &qdrant.PointStruct{
			Id:      toPointID(e.ID),
			Vectors: qdrant.NewVectors(e.Vector...),
			Payload: qdrant.NewValueMap(e.Payload),
		})
	}
	return points, nil
}

// toPointID maps unsigned integer strings to numeric IDs and anything else
// to UUID IDs, mirroring how Qdrant reports them back.
func toPointID(id string) *qdrant.PointId {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil && strconv.FormatUint(n, 10) == id {
		return qdrant.NewIDNum(n)
	}
	return qdrant.NewID(id)
}

// ── Result Conversion ────────────────────────────────────────────────────────

func parseSearchResults(collection string, resp []*qdrant.ScoredPoint) ([]vectordb.SearchResult, error) {
	results := make([]vectordb.SearchResult, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.Id)
		if err != nil {
			return nil, err
		}
		results = append(results, vectordb.SearchResult{
			ID:             id,
			Score:          r.Score,
			Payload:        convertPayload(r.Payload),
			CollectionName: collection,
		})
	}
	return results, nil
}

func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}

// ── Collection Info ──────────────────────────────────────────────────────────

// extractVectorDetails returns the vector size and distance of a collection
// with a single unnamed vector config, or zero values otherwise.
func extractVectorDetails(info *qdrant.CollectionInfo) (int, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}
	if cfg, ok := info.Config.Params.VectorsConfig.Config.(*qdrant.VectorsConfig_Params); ok {
		return int(cfg.Params.Size), cfg.Params.Distance.String()
	}
	return 0, ""
}

func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}

// parseDistance maps a configured metric name to a Qdrant distance. Unknown
// names fall back to cosine.
func parseDistance(name string) qdrant.Distance {
	switch strings.ToLower(name) {
	case "dot":
		return qdrant.Distance_Dot
	case "euclid", "euclidean":
		return qdrant.Distance_Euclid
	case "manhattan":
		return qdrant.Distance_Manhattan
	default:
		return qdrant.Distance_Cosine
	}
}
