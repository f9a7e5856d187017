package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendant is the on-board crew role. It carries nothing but the audit
// footer and an optional link to its staff record.
type Attendant struct {
	ID        *int64     `json:"id"`
	CreatedAt *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt *time.Time `json:"updatedAt"`
	IsDeleted *bool      `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt"`
	DeletedBy *uuid.UUID `json:"deletedBy"`
	Staff     *Ref       `json:"staff"`
}
