package model

import (
	"time"

	"github.com/google/uuid"
)

// Gender of a staff member.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Genders lists every accepted Gender value.
var Genders = []Gender{GenderMale, GenderFemale}

// StaffStatus is the employment state of a staff member.
type StaffStatus string

const (
	StaffActive   StaffStatus = "ACTIVE"
	StaffInactive StaffStatus = "INACTIVE"
)

// StaffStatuses lists every accepted StaffStatus value.
var StaffStatuses = []StaffStatus{StaffActive, StaffInactive}

// Staff is a person employed on the route side: drivers and attendants
// both link to one. Row of the `staff` table.
type Staff struct {
	ID          *int64       `json:"id"`
	Name        *string      `json:"name" validate:"required"`
	Age         *int         `json:"age"`
	Gender      *Gender      `json:"gender" validate:"omitnil,oneof=MALE FEMALE"`
	PhoneNumber *string      `json:"phoneNumber"`
	Status      *StaffStatus `json:"status" validate:"omitnil,oneof=ACTIVE INACTIVE"`
	CreatedAt   *time.Time   `json:"createdAt" validate:"required"`
	UpdatedAt   *time.Time   `json:"updatedAt"`
	IsDeleted   *bool        `json:"isDeleted"`
	DeletedAt   *time.Time   `json:"deletedAt"`
	DeletedBy   *uuid.UUID   `json:"deletedBy"`
}
