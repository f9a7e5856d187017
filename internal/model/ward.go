package model

import (
	"time"

	"github.com/google/uuid"
)

// Ward is the smallest administrative unit; addresses belong to one.
type Ward struct {
	ID                   *int64     `json:"id"`
	WardCode             *string    `json:"wardCode" validate:"required"`
	Name                 *string    `json:"name" validate:"required"`
	NameEn               *string    `json:"nameEn"`
	FullName             *string    `json:"fullName"`
	FullNameEn           *string    `json:"fullNameEn"`
	CodeName             *string    `json:"codeName"`
	AdministrativeUnitID *int       `json:"administrativeUnitId"`
	CreatedAt            *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt            *time.Time `json:"updatedAt"`
	IsDeleted            *bool      `json:"isDeleted"`
	DeletedAt            *time.Time `json:"deletedAt"`
	DeletedBy            *uuid.UUID `json:"deletedBy"`
}
