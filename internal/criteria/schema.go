package criteria

import "fmt"

// Schema is the filterable field table of one entity type. Build it once at
// package init; it is read-only afterwards and safe for concurrent use.
type Schema[T any] struct {
	table  string
	fields []Field[T]
	index  map[string]int
	id     Field[T]
}

// NewSchema indexes fields by name. It panics on a duplicate name or when
// no "id" field is present, both programming errors.
func NewSchema[T any](table string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{table: table, fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("criteria: duplicate field %q in %s", f.Name, table))
		}
		s.index[f.Name] = i
	}
	idx, ok := s.index["id"]
	if !ok {
		panic(fmt.Sprintf("criteria: schema %s has no id field", table))
	}
	s.id = fields[idx]
	return s
}

// Table is the SQL table the columns belong to.
func (s *Schema[T]) Table() string { return s.table }

// Field looks a field up by query name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	i, ok := s.index[name]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// All is the empty criteria set, which matches every entity.
func (s *Schema[T]) All() Criteria[T] { return Criteria[T]{schema: s} }

// Criteria is a conjunction of criteria over one schema.
type Criteria[T any] struct {
	schema *Schema[T]
	items  []Criterion
}

// Items returns the individual criteria in evaluation order.
func (c Criteria[T]) Items() []Criterion { return c.items }

// Len is the number of criteria.
func (c Criteria[T]) Len() int { return len(c.items) }

// Matches reports whether e satisfies every criterion. An empty set matches.
func (c Criteria[T]) Matches(e *T) bool {
	for _, cr := range c.items {
		f, _ := c.schema.Field(cr.Field)
		if !test(cr, f.Value(e)) {
			return false
		}
	}
	return true
}

// Filter returns the matching subset, preserving input order.
func (c Criteria[T]) Filter(items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, e := range items {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
