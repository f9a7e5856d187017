package model

import (
	"time"

	"github.com/google/uuid"
)

// SeatMap is a named seating layout. The optional SeatMapImg links to the
// FileRoute holding its rendered image (seat_map.seat_map_img_id).
type SeatMap struct {
	ID         *int64     `json:"id"`
	Name       *string    `json:"name" validate:"required"`
	CreatedAt  *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt  *time.Time `json:"updatedAt"`
	IsDeleted  *bool      `json:"isDeleted"`
	DeletedAt  *time.Time `json:"deletedAt"`
	DeletedBy  *uuid.UUID `json:"deletedBy"`
	SeatMapImg *Ref       `json:"seatMapImg"`
}
