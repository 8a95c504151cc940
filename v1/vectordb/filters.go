package vectordb

// Filter restricts a search to points whose payload satisfies its clauses.
//
//	f := vectordb.NewFilter().
//	    WithMust(vectordb.Match("status", "published")).
//	    WithShould(vectordb.Match("tag", "ml"), vectordb.Match("tag", "ai"))
type Filter struct {
	// Must: all conditions must match (AND)
	Must []Condition `json:"must,omitempty"`
	// Should: at least one condition must match (OR)
	Should []Condition `json:"should,omitempty"`
	// MustNot: none of the conditions may match (NOT)
	MustNot []Condition `json:"mustNot,omitempty"`
}

// Condition is one payload predicate. Exactly one of Equals, AnyOf, NoneOf
// or Range is expected to be set.
type Condition struct {
	Field  string        `json:"field"`
	Equals any           `json:"equalTo,omitempty"`
	AnyOf  []any         `json:"anyOf,omitempty"`
	NoneOf []any         `json:"noneOf,omitempty"`
	Range  *NumericRange `json:"range,omitempty"`
}

// NumericRange bounds a numeric field. Nil bounds are open.
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"`
	Lt  *float64 `json:"lessThan,omitempty"`
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`
}

// IsEmpty reports whether the range has no bounds.
func (r *NumericRange) IsEmpty() bool {
	return r == nil || (r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil)
}

// NewFilter returns an empty Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// WithMust appends AND conditions.
func (f *Filter) WithMust(conds ...Condition) *Filter {
	f.Must = append(f.Must, conds...)
	return f
}

// WithShould appends OR conditions.
func (f *Filter) WithShould(conds ...Condition) *Filter {
	f.Should = append(f.Should, conds...)
	return f
}

// WithMustNot appends NOT conditions.
func (f *Filter) WithMustNot(conds ...Condition) *Filter {
	f.MustNot = append(f.MustNot, conds...)
	return f
}

// IsEmpty reports whether the filter has no conditions.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.Must) == 0 && len(f.Should) == 0 && len(f.MustNot) == 0)
}

// Match is an exact match (field = value).
func Match(field string, value any) Condition {
	return Condition{Field: field, Equals: value}
}

// MatchAny matches when the field equals one of values (IN).
func MatchAny(field string, values ...any) Condition {
	return Condition{Field: field, AnyOf: values}
}

// MatchExcept matches when the field equals none of values (NOT IN).
func MatchExcept(field string, values ...any) Condition {
	return Condition{Field: field, NoneOf: values}
}

// InRange matches numeric fields inside r.
func InRange(field string, r NumericRange) Condition {
	return Condition{Field: field, Range: &r}
}
