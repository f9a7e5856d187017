package criteria

// Kind is the value type of a filterable field.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindDecimal
	KindInstant
	KindBool
	KindUUID
	KindEnum
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindInteger: "integer",
	KindDecimal: "decimal",
	KindInstant: "instant",
	KindBool:    "boolean",
	KindUUID:    "uuid",
	KindEnum:    "enum",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Ordered reports whether range operators apply to k.
func (k Kind) Ordered() bool {
	return k == KindInteger || k == KindDecimal || k == KindInstant
}

// Op is a filter operator as spelled in the query string.
type Op string

const (
	OpEquals             Op = "equals"
	OpNotEquals          Op = "notEquals"
	OpIn                 Op = "in"
	OpNotIn              Op = "notIn"
	OpSpecified          Op = "specified"
	OpGreaterThan        Op = "greaterThan"
	OpGreaterThanOrEqual Op = "greaterThanOrEqual"
	OpLessThan           Op = "lessThan"
	OpLessThanOrEqual    Op = "lessThanOrEqual"
	OpContains           Op = "contains"
	OpDoesNotContain     Op = "doesNotContain"
)

// Allows reports whether op may be applied to a field of kind k.
func (k Kind) Allows(op Op) bool {
	switch op {
	case OpEquals, OpNotEquals, OpIn, OpNotIn, OpSpecified:
		return true
	case OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		return k.Ordered()
	case OpContains, OpDoesNotContain:
		return k == KindString
	}
	return false
}

// Criterion is one field-scoped filter. Which payload is meaningful depends
// on Op: Values for in/notIn, Flag for specified, Value for the rest.
type Criterion struct {
	Field  string
	Op     Op
	Value  any
	Values []any
	Flag   bool
}
