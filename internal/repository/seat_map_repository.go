package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

var SeatMapSchema = criteria.NewSchema[model.SeatMap]("seat_map",
	criteria.ID(func(s *model.SeatMap) *int64 { return s.ID }),
	criteria.String("name", "name", func(s *model.SeatMap) *string { return s.Name }),
	criteria.Instant("createdAt", "created_at", func(s *model.SeatMap) *time.Time { return s.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(s *model.SeatMap) *time.Time { return s.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(s *model.SeatMap) *bool { return s.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(s *model.SeatMap) *time.Time { return s.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(s *model.SeatMap) *uuid.UUID { return s.DeletedBy }),
	criteria.Relation("seatMapImgId", "seat_map_img_id", func(s *model.SeatMap) *int64 { return model.RefID(s.SeatMapImg) }),
)

var SeatMapTable = &Table[model.SeatMap]{
	Entity:  "SeatMap",
	Schema:  SeatMapSchema,
	Columns: columns([]string{"name"}, auditColumns, []string{"seat_map_img_id"}),
	ID:      func(s *model.SeatMap) *int64 { return s.ID },
	SetID:   func(s *model.SeatMap, id int64) { s.ID = &id },
	Args: func(s *model.SeatMap) []any {
		return []any{s.Name, s.CreatedAt, s.UpdatedAt, s.IsDeleted, s.DeletedAt, uuidArg(s.DeletedBy), model.RefID(s.SeatMapImg)}
	},
	Scan: func(row RowScanner) (*model.SeatMap, error) {
		var s model.SeatMap
		var imgID *int64
		if err := row.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.IsDeleted, &s.DeletedAt, &s.DeletedBy, &imgID); err != nil {
			return nil, err
		}
		s.SeatMapImg = model.RefFrom(imgID)
		return &s, nil
	},
}
