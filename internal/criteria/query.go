package criteria

import (
	"math"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Order is one sort key.
type Order struct {
	Field string
	Desc  bool
}

// Page selects a window of the sorted result. An unpaged query returns
// every match.
type Page struct {
	Number int
	Size   int
	Paged  bool
}

// Offset is the number of rows skipped before the page.
func (p Page) Offset() int { return p.Number * p.Size }

// Limits bounds the page size a client may ask for.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits is used when a zero Limits is passed to Parse.
var DefaultLimits = Limits{DefaultSize: 20, MaxSize: 2000}

// Query is a parsed list request: what to match, how to order it and which
// page to return. Count requests only use Criteria.
type Query[T any] struct {
	Criteria Criteria[T]
	Sort     []Order
	Page     Page
}

// Query returns an unpaged query matching everything in id order.
func (s *Schema[T]) Query() *Query[T] {
	return &Query[T]{Criteria: s.All()}
}

var reserved = map[string]bool{"page": true, "size": true, "sort": true, "distinct": true}

// Parse reads `field.operator=value` pairs plus page, size and sort. Keys
// without a dot are not criteria and are skipped. Any malformed piece fails
// the whole query with a *MalformedError.
func (s *Schema[T]) Parse(values url.Values, limits Limits) (*Query[T], error) {
	if limits.DefaultSize <= 0 || limits.MaxSize <= 0 {
		limits = DefaultLimits
	}
	q := &Query[T]{Criteria: Criteria[T]{schema: s}}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if reserved[key] {
			continue
		}
		dot := strings.LastIndexByte(key, '.')
		if dot < 0 {
			continue
		}
		name, op := key[:dot], Op(key[dot+1:])
		f, ok := s.Field(name)
		if !ok {
			return nil, malformed(key, "", "unknown field %q", name)
		}
		for _, raw := range values[key] {
			c, err := f.criterion(key, op, raw)
			if err != nil {
				return nil, err
			}
			q.Criteria.items = append(q.Criteria.items, c)
		}
	}

	if raw, ok := first(values, "distinct"); ok {
		if _, err := strconv.ParseBool(raw); err != nil {
			return nil, malformed("distinct", raw, "expected true or false")
		}
	}

	page, err := parsePage(values, limits)
	if err != nil {
		return nil, err
	}
	q.Page = page

	order, err := s.parseSort(values["sort"])
	if err != nil {
		return nil, err
	}
	q.Sort = order
	return q, nil
}

func first(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func parsePage(values url.Values, limits Limits) (Page, error) {
	p := Page{Size: limits.DefaultSize}
	if raw, ok := first(values, "page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > math.MaxInt32 {
			return Page{}, malformed("page", raw, "expected a non-negative integer")
		}
		p.Number, p.Paged = n, true
	}
	if raw, ok := first(values, "size"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, malformed("size", raw, "expected a positive integer")
		}
		p.Size, p.Paged = min(n, limits.MaxSize), true
	}
	return p, nil
}

// parseSort accepts `sort=a,b,desc` style values: the optional trailing
// direction applies to every property listed before it.
func (s *Schema[T]) parseSort(raws []string) ([]Order, error) {
	var out []Order
	for _, raw := range raws {
		parts := strings.Split(raw, ",")
		desc := false
		switch strings.ToLower(parts[len(parts)-1]) {
		case "desc":
			desc = true
			parts = parts[:len(parts)-1]
		case "asc":
			parts = parts[:len(parts)-1]
		}
		if len(parts) == 0 {
			return nil, malformed("sort", raw, "missing property")
		}
		for _, p := range parts {
			if _, ok := s.Field(p); !ok {
				return nil, malformed("sort", raw, "unknown property %q", p)
			}
			out = append(out, Order{Field: p, Desc: desc})
		}
	}
	return out, nil
}

// orders is the effective sort: the requested keys followed by id
// ascending, unless id is already a key.
func (q *Query[T]) orders() []Order {
	if slices.ContainsFunc(q.Sort, func(o Order) bool { return o.Field == "id" }) {
		return q.Sort
	}
	return append(slices.Clone(q.Sort), Order{Field: "id"})
}

// Compare orders two entities under the query's sort. NULL sorts first
// ascending and last descending.
func (q *Query[T]) Compare(a, b *T) int {
	s := q.Criteria.schema
	for _, o := range q.orders() {
		f, _ := s.Field(o.Field)
		c := compareNullable(f.Value(a), f.Value(b))
		if o.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Apply filters, sorts and pages items in memory. The returned total is the
// number of matches before paging.
func (q *Query[T]) Apply(items []*T) ([]*T, int64) {
	matched := q.Criteria.Filter(items)
	slices.SortStableFunc(matched, q.Compare)
	total := int64(len(matched))
	if !q.Page.Paged {
		return matched, total
	}
	lo := min(q.Page.Offset(), len(matched))
	hi := min(lo+q.Page.Size, len(matched))
	return matched[lo:hi], total
}

// OrderBy renders the effective sort as a MySQL ORDER BY list.
func (q *Query[T]) OrderBy() string {
	s := q.Criteria.schema
	terms := make([]string, 0, len(q.Sort)+1)
	for _, o := range q.orders() {
		f, _ := s.Field(o.Field)
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms = append(terms, f.Column+" "+dir)
	}
	return strings.Join(terms, ", ")
}
