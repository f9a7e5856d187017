package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

var FloorSchema = criteria.NewSchema[model.Floor]("floor",
	criteria.ID(func(f *model.Floor) *int64 { return f.ID }),
	criteria.Integer("floorNo", "floor_no", func(f *model.Floor) *int { return f.FloorNo }),
	criteria.Decimal("priceFactorFloor", "price_factor_floor", func(f *model.Floor) *float64 { return f.PriceFactorFloor }),
	criteria.Instant("createdAt", "created_at", func(f *model.Floor) *time.Time { return f.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(f *model.Floor) *time.Time { return f.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(f *model.Floor) *bool { return f.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(f *model.Floor) *time.Time { return f.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(f *model.Floor) *uuid.UUID { return f.DeletedBy }),
	criteria.Relation("seatMapId", "seat_map_id", func(f *model.Floor) *int64 { return model.RefID(f.SeatMap) }),
)

var FloorTable = &Table[model.Floor]{
	Entity:  "Floor",
	Schema:  FloorSchema,
	Columns: columns([]string{"floor_no", "price_factor_floor"}, auditColumns, []string{"seat_map_id"}),
	ID:      func(f *model.Floor) *int64 { return f.ID },
	SetID:   func(f *model.Floor, id int64) { f.ID = &id },
	Args: func(f *model.Floor) []any {
		return []any{f.FloorNo, f.PriceFactorFloor,
			f.CreatedAt, f.UpdatedAt, f.IsDeleted, f.DeletedAt, uuidArg(f.DeletedBy),
			model.RefID(f.SeatMap)}
	},
	Scan: func(row RowScanner) (*model.Floor, error) {
		var f model.Floor
		var seatMapID *int64
		if err := row.Scan(&f.ID, &f.FloorNo, &f.PriceFactorFloor,
			&f.CreatedAt, &f.UpdatedAt, &f.IsDeleted, &f.DeletedAt, &f.DeletedBy, &seatMapID); err != nil {
			return nil, err
		}
		f.SeatMap = model.RefFrom(seatMapID)
		return &f, nil
	},
}
