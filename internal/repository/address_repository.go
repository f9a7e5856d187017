package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

// AddressSchema is the filter table behind GET /api/addresses.
var AddressSchema = criteria.NewSchema[model.Address]("address",
	criteria.ID(func(a *model.Address) *int64 { return a.ID }),
	criteria.String("streetAddress", "street_address", func(a *model.Address) *string { return a.StreetAddress }),
	criteria.Decimal("latitude", "latitude", func(a *model.Address) *float64 { return a.Latitude }),
	criteria.Decimal("longitude", "longitude", func(a *model.Address) *float64 { return a.Longitude }),
	criteria.Instant("createdAt", "created_at", func(a *model.Address) *time.Time { return a.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(a *model.Address) *time.Time { return a.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(a *model.Address) *bool { return a.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(a *model.Address) *time.Time { return a.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(a *model.Address) *uuid.UUID { return a.DeletedBy }),
	criteria.Relation("wardId", "ward_id", func(a *model.Address) *int64 { return model.RefID(a.Ward) }),
)

var AddressTable = &Table[model.Address]{
	Entity:  "Address",
	Schema:  AddressSchema,
	Columns: columns([]string{"street_address", "latitude", "longitude"}, auditColumns, []string{"ward_id"}),
	ID:      func(a *model.Address) *int64 { return a.ID },
	SetID:   func(a *model.Address, id int64) { a.ID = &id },
	Args: func(a *model.Address) []any {
		return []any{a.StreetAddress, a.Latitude, a.Longitude,
			a.CreatedAt, a.UpdatedAt, a.IsDeleted, a.DeletedAt, uuidArg(a.DeletedBy),
			model.RefID(a.Ward)}
	},
	Scan: func(row RowScanner) (*model.Address, error) {
		var a model.Address
		var wardID *int64
		if err := row.Scan(&a.ID, &a.StreetAddress, &a.Latitude, &a.Longitude,
			&a.CreatedAt, &a.UpdatedAt, &a.IsDeleted, &a.DeletedAt, &a.DeletedBy, &wardID); err != nil {
			return nil, err
		}
		a.Ward = model.RefFrom(wardID)
		return &a, nil
	},
}
