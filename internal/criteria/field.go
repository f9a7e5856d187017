package criteria

import (
	"bytes"
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field is one row of an entity's field table: the query name, the SQL
// column, the value kind and a getter. The getter returns nil for NULL and
// otherwise one of string, int64, float64, time.Time, bool or uuid.UUID.
type Field[T any] struct {
	Name   string
	Column string
	Kind   Kind
	enum   []string
	get    func(*T) any
}

// Value reads the field from e.
func (f Field[T]) Value(e *T) any { return f.get(e) }

// ID is the identifier field every schema must have.
func ID[T any](get func(*T) *int64) Field[T] {
	return Integer("id", "id", get)
}

func String[T any](name, column string, get func(*T) *string) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindString, get: func(e *T) any {
		if v := get(e); v != nil {
			return *v
		}
		return nil
	}}
}

// Integer covers both 32 and 64 bit columns; values are compared as int64.
func Integer[T any, N ~int | ~int32 | ~int64](name, column string, get func(*T) *N) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindInteger, get: func(e *T) any {
		if v := get(e); v != nil {
			return int64(*v)
		}
		return nil
	}}
}

// Relation filters on the id of a many-to-one target through the foreign
// key column, e.g. wardId on address.ward_id.
func Relation[T any](name, column string, get func(*T) *int64) Field[T] {
	return Integer(name, column, get)
}

func Decimal[T any](name, column string, get func(*T) *float64) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindDecimal, get: func(e *T) any {
		if v := get(e); v != nil {
			return *v
		}
		return nil
	}}
}

func Instant[T any](name, column string, get func(*T) *time.Time) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindInstant, get: func(e *T) any {
		if v := get(e); v != nil {
			return v.UTC()
		}
		return nil
	}}
}

func Bool[T any](name, column string, get func(*T) *bool) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindBool, get: func(e *T) any {
		if v := get(e); v != nil {
			return *v
		}
		return nil
	}}
}

func UUID[T any](name, column string, get func(*T) *uuid.UUID) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindUUID, get: func(e *T) any {
		if v := get(e); v != nil {
			return *v
		}
		return nil
	}}
}

// Enum accepts only the listed constants; values are stored as their names.
func Enum[T any, E ~string](name, column string, values []E, get func(*T) *E) Field[T] {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return Field[T]{Name: name, Column: column, Kind: KindEnum, enum: names, get: func(e *T) any {
		if v := get(e); v != nil {
			return string(*v)
		}
		return nil
	}}
}

// criterion builds a Criterion for op from its raw query-string value.
func (f Field[T]) criterion(param string, op Op, raw string) (Criterion, error) {
	if !f.Kind.Allows(op) {
		return Criterion{}, malformed(param, raw, "operator %q is not supported for %s field %q", op, f.Kind, f.Name)
	}
	c := Criterion{Field: f.Name, Op: op}
	switch op {
	case OpSpecified:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Criterion{}, malformed(param, raw, "expected true or false")
		}
		c.Flag = b
	case OpIn, OpNotIn:
		c.Values = []any{}
		if raw == "" {
			return c, nil
		}
		for _, part := range strings.Split(raw, ",") {
			v, err := f.parse(param, part)
			if err != nil {
				return Criterion{}, err
			}
			c.Values = append(c.Values, v)
		}
	default:
		v, err := f.parse(param, raw)
		if err != nil {
			return Criterion{}, err
		}
		c.Value = v
	}
	return c, nil
}

func (f Field[T]) parse(param, raw string) (any, error) {
	switch f.Kind {
	case KindString:
		return raw, nil
	case KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, malformed(param, raw, "expected an integer")
		}
		return n, nil
	case KindDecimal:
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, malformed(param, raw, "expected a decimal number")
		}
		return d, nil
	case KindInstant:
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, malformed(param, raw, "expected an RFC 3339 instant")
		}
		return t.UTC(), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, malformed(param, raw, "expected true or false")
		}
		return b, nil
	case KindUUID:
		u, err := uuid.Parse(raw)
		if err != nil {
			return nil, malformed(param, raw, "expected a UUID")
		}
		return u, nil
	case KindEnum:
		if !slices.Contains(f.enum, raw) {
			return nil, malformed(param, raw, "expected one of %s", strings.Join(f.enum, ", "))
		}
		return raw, nil
	}
	return nil, malformed(param, raw, "unsupported field kind %s", f.Kind)
}

// compare orders two non-nil values of the same kind.
func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		return strings.Compare(x, b.(string))
	case int64:
		return cmp.Compare(x, b.(int64))
	case float64:
		return cmp.Compare(x, b.(float64))
	case time.Time:
		return x.Compare(b.(time.Time))
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case uuid.UUID:
		y := b.(uuid.UUID)
		return bytes.Compare(x[:], y[:])
	}
	return 0
}

// compareNullable puts nil before every value, as MySQL does for ASC.
func compareNullable(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return compare(a, b)
}
