package criteria

import (
	"slices"
	"strings"
)

// test evaluates one criterion against a field value (nil = NULL).
// The negative operators are the exact complement of their positive
// counterparts, so NULL passes notEquals, notIn and doesNotContain.
func test(cr Criterion, v any) bool {
	switch cr.Op {
	case OpSpecified:
		return (v != nil) == cr.Flag
	case OpEquals:
		return v != nil && compare(v, cr.Value) == 0
	case OpNotEquals:
		return !test(Criterion{Op: OpEquals, Value: cr.Value}, v)
	case OpIn:
		return v != nil && slices.ContainsFunc(cr.Values, func(x any) bool { return compare(v, x) == 0 })
	case OpNotIn:
		return !test(Criterion{Op: OpIn, Values: cr.Values}, v)
	case OpGreaterThan:
		return v != nil && compare(v, cr.Value) > 0
	case OpGreaterThanOrEqual:
		return v != nil && compare(v, cr.Value) >= 0
	case OpLessThan:
		return v != nil && compare(v, cr.Value) < 0
	case OpLessThanOrEqual:
		return v != nil && compare(v, cr.Value) <= 0
	case OpContains:
		return v != nil && strings.Contains(strings.ToUpper(v.(string)), strings.ToUpper(cr.Value.(string)))
	case OpDoesNotContain:
		return !test(Criterion{Op: OpContains, Value: cr.Value}, v)
	}
	return false
}
