package repository

import (
	"github.com/google/uuid"
)

// auditColumns is the footer every route table ends with, before any
// foreign keys.
var auditColumns = []string{"created_at", "updated_at", "is_deleted", "deleted_at", "deleted_by"}

func columns(cols ...[]string) []string {
	var out []string
	for _, c := range cols {
		out = append(out, c...)
	}
	return out
}

// uuidArg stores UUIDs in their canonical 36 character form.
func uuidArg(u *uuid.UUID) any {
	if u == nil {
		return nil
	}
	return u.String()
}
