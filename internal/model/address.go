package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is a street location inside a ward. Row of the `address` table.
//
// Fields:
//
//	StreetAddress – free text street line, required.
//	Latitude      – DECIMAL(21,2), optional.
//	Longitude     – DECIMAL(21,2), optional.
//	Ward          – required link to the owning ward (address.ward_id).
type Address struct {
	ID            *int64     `json:"id"`
	StreetAddress *string    `json:"streetAddress" validate:"required"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	CreatedAt     *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	IsDeleted     *bool      `json:"isDeleted"`
	DeletedAt     *time.Time `json:"deletedAt"`
	DeletedBy     *uuid.UUID `json:"deletedBy"`
	Ward          *Ref       `json:"ward" validate:"required"`
}
