package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

var AttendantSchema = criteria.NewSchema[model.Attendant]("attendant",
	criteria.ID(func(a *model.Attendant) *int64 { return a.ID }),
	criteria.Instant("createdAt", "created_at", func(a *model.Attendant) *time.Time { return a.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(a *model.Attendant) *time.Time { return a.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(a *model.Attendant) *bool { return a.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(a *model.Attendant) *time.Time { return a.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(a *model.Attendant) *uuid.UUID { return a.DeletedBy }),
	criteria.Relation("staffId", "staff_id", func(a *model.Attendant) *int64 { return model.RefID(a.Staff) }),
)

var AttendantTable = &Table[model.Attendant]{
	Entity:  "Attendant",
	Schema:  AttendantSchema,
	Columns: columns(auditColumns, []string{"staff_id"}),
	ID:      func(a *model.Attendant) *int64 { return a.ID },
	SetID:   func(a *model.Attendant, id int64) { a.ID = &id },
	Args: func(a *model.Attendant) []any {
		return []any{a.CreatedAt, a.UpdatedAt, a.IsDeleted, a.DeletedAt, uuidArg(a.DeletedBy), model.RefID(a.Staff)}
	},
	Scan: func(row RowScanner) (*model.Attendant, error) {
		var a model.Attendant
		var staffID *int64
		if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.IsDeleted, &a.DeletedAt, &a.DeletedBy, &staffID); err != nil {
			return nil, err
		}
		a.Staff = model.RefFrom(staffID)
		return &a, nil
	},
}
