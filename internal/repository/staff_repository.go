package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

var StaffSchema = criteria.NewSchema[model.Staff]("staff",
	criteria.ID(func(s *model.Staff) *int64 { return s.ID }),
	criteria.String("name", "name", func(s *model.Staff) *string { return s.Name }),
	criteria.Integer("age", "age", func(s *model.Staff) *int { return s.Age }),
	criteria.Enum("gender", "gender", model.Genders, func(s *model.Staff) *model.Gender { return s.Gender }),
	criteria.String("phoneNumber", "phone_number", func(s *model.Staff) *string { return s.PhoneNumber }),
	criteria.Enum("status", "status", model.StaffStatuses, func(s *model.Staff) *model.StaffStatus { return s.Status }),
	criteria.Instant("createdAt", "created_at", func(s *model.Staff) *time.Time { return s.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(s *model.Staff) *time.Time { return s.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(s *model.Staff) *bool { return s.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(s *model.Staff) *time.Time { return s.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(s *model.Staff) *uuid.UUID { return s.DeletedBy }),
)

var StaffTable = &Table[model.Staff]{
	Entity:  "Staff",
	Schema:  StaffSchema,
	Columns: columns([]string{"name", "age", "gender", "phone_number", "status"}, auditColumns),
	ID:      func(s *model.Staff) *int64 { return s.ID },
	SetID:   func(s *model.Staff, id int64) { s.ID = &id },
	Args: func(s *model.Staff) []any {
		return []any{s.Name, s.Age, s.Gender, s.PhoneNumber, s.Status,
			s.CreatedAt, s.UpdatedAt, s.IsDeleted, s.DeletedAt, uuidArg(s.DeletedBy)}
	},
	Scan: func(row RowScanner) (*model.Staff, error) {
		var s model.Staff
		if err := row.Scan(&s.ID, &s.Name, &s.Age, &s.Gender, &s.PhoneNumber, &s.Status,
			&s.CreatedAt, &s.UpdatedAt, &s.IsDeleted, &s.DeletedAt, &s.DeletedBy); err != nil {
			return nil, err
		}
		return &s, nil
	},
}
