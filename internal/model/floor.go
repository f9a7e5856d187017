package model

import (
	"time"

	"github.com/google/uuid"
)

// Floor is one deck of a seat map.
//
// Fields:
//
//	FloorNo          – deck number, required.
//	PriceFactorFloor – multiplier applied to seat prices on this deck.
//	SeatMap          – required owning seat map (floor.seat_map_id).
type Floor struct {
	ID               *int64     `json:"id"`
	FloorNo          *int       `json:"floorNo" validate:"required"`
	PriceFactorFloor *float64   `json:"priceFactorFloor"`
	CreatedAt        *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt        *time.Time `json:"updatedAt"`
	IsDeleted        *bool      `json:"isDeleted"`
	DeletedAt        *time.Time `json:"deletedAt"`
	DeletedBy        *uuid.UUID `json:"deletedBy"`
	SeatMap          *Ref       `json:"seatMap" validate:"required"`
}
