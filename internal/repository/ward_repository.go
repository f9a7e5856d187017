package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

var WardSchema = criteria.NewSchema[model.Ward]("ward",
	criteria.ID(func(w *model.Ward) *int64 { return w.ID }),
	criteria.String("wardCode", "ward_code", func(w *model.Ward) *string { return w.WardCode }),
	criteria.String("name", "name", func(w *model.Ward) *string { return w.Name }),
	criteria.String("nameEn", "name_en", func(w *model.Ward) *string { return w.NameEn }),
	criteria.String("fullName", "full_name", func(w *model.Ward) *string { return w.FullName }),
	criteria.String("fullNameEn", "full_name_en", func(w *model.Ward) *string { return w.FullNameEn }),
	criteria.String("codeName", "code_name", func(w *model.Ward) *string { return w.CodeName }),
	criteria.Integer("administrativeUnitId", "administrative_unit_id", func(w *model.Ward) *int { return w.AdministrativeUnitID }),
	criteria.Instant("createdAt", "created_at", func(w *model.Ward) *time.Time { return w.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(w *model.Ward) *time.Time { return w.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(w *model.Ward) *bool { return w.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(w *model.Ward) *time.Time { return w.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(w *model.Ward) *uuid.UUID { return w.DeletedBy }),
)

var WardTable = &Table[model.Ward]{
	Entity: "Ward",
	Schema: WardSchema,
	Columns: columns([]string{"ward_code", "name", "name_en", "full_name", "full_name_en", "code_name", "administrative_unit_id"},
		auditColumns),
	ID:    func(w *model.Ward) *int64 { return w.ID },
	SetID: func(w *model.Ward, id int64) { w.ID = &id },
	Args: func(w *model.Ward) []any {
		return []any{w.WardCode, w.Name, w.NameEn, w.FullName, w.FullNameEn, w.CodeName, w.AdministrativeUnitID,
			w.CreatedAt, w.UpdatedAt, w.IsDeleted, w.DeletedAt, uuidArg(w.DeletedBy)}
	},
	Scan: func(row RowScanner) (*model.Ward, error) {
		var w model.Ward
		if err := row.Scan(&w.ID, &w.WardCode, &w.Name, &w.NameEn, &w.FullName, &w.FullNameEn, &w.CodeName, &w.AdministrativeUnitID,
			&w.CreatedAt, &w.UpdatedAt, &w.IsDeleted, &w.DeletedAt, &w.DeletedBy); err != nil {
			return nil, err
		}
		return &w, nil
	},
}
