package criteria

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Where compiles the criteria into a MySQL boolean expression over the
// schema's columns plus its positional arguments. The empty set compiles
// to "1=1" so callers can always write "WHERE " + cond.
func (c Criteria[T]) Where() (string, []any) {
	where := []string{}
	args := []any{}

	for _, cr := range c.items {
		f, _ := c.schema.Field(cr.Field)
		col := f.Column
		switch cr.Op {
		case OpSpecified:
			if cr.Flag {
				where = append(where, col+" IS NOT NULL")
			} else {
				where = append(where, col+" IS NULL")
			}
		case OpEquals:
			where = append(where, col+" = ?")
			args = append(args, sqlArg(cr.Value))
		case OpNotEquals:
			where = append(where, "("+col+" <> ? OR "+col+" IS NULL)")
			args = append(args, sqlArg(cr.Value))
		case OpIn, OpNotIn:
			if len(cr.Values) == 0 {
				if cr.Op == OpIn {
					where = append(where, "1=0")
				}
				continue
			}
			marks := strings.TrimSuffix(strings.Repeat("?,", len(cr.Values)), ",")
			for _, v := range cr.Values {
				args = append(args, sqlArg(v))
			}
			if cr.Op == OpIn {
				where = append(where, col+" IN ("+marks+")")
			} else {
				where = append(where, "("+col+" NOT IN ("+marks+") OR "+col+" IS NULL)")
			}
		case OpGreaterThan:
			where = append(where, col+" > ?")
			args = append(args, sqlArg(cr.Value))
		case OpGreaterThanOrEqual:
			where = append(where, col+" >= ?")
			args = append(args, sqlArg(cr.Value))
		case OpLessThan:
			where = append(where, col+" < ?")
			args = append(args, sqlArg(cr.Value))
		case OpLessThanOrEqual:
			where = append(where, col+" <= ?")
			args = append(args, sqlArg(cr.Value))
		case OpContains:
			where = append(where, "UPPER("+col+") LIKE ?")
			args = append(args, likePattern(cr.Value.(string)))
		case OpDoesNotContain:
			where = append(where, "(UPPER("+col+") NOT LIKE ? OR "+col+" IS NULL)")
			args = append(args, likePattern(cr.Value.(string)))
		}
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToUpper(s)) + "%"
}

func sqlArg(v any) any {
	switch x := v.(type) {
	case uuid.UUID:
		return x.String()
	case time.Time:
		return x.UTC()
	}
	return v
}
