package model

import (
	"time"

	"github.com/google/uuid"
)

// Driver is the driving role of a staff member. Row of the `driver` table.
type Driver struct {
	ID              *int64     `json:"id"`
	LicenseClass    *string    `json:"licenseClass"`
	YearsExperience *int       `json:"yearsExperience"`
	CreatedAt       *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt       *time.Time `json:"updatedAt"`
	IsDeleted       *bool      `json:"isDeleted"`
	DeletedAt       *time.Time `json:"deletedAt"`
	DeletedBy       *uuid.UUID `json:"deletedBy"`
	Staff           *Ref       `json:"staff"`
}
