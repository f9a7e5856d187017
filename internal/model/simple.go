package model

import "time"

// SimpleStaffRole is the flattened view of a driver or attendant together
// with its staff record. LicenseClass and YearsExperience are only used by
// drivers.
type SimpleStaffRole struct {
	ID              *int64       `json:"id"`
	StaffID         *int64       `json:"staffId"`
	Name            *string      `json:"name" validate:"required"`
	Age             *int         `json:"age"`
	Gender          *Gender      `json:"gender" validate:"omitnil,oneof=MALE FEMALE"`
	PhoneNumber     *string      `json:"phoneNumber"`
	Status          *StaffStatus `json:"status" validate:"omitnil,oneof=ACTIVE INACTIVE"`
	LicenseClass    *string      `json:"licenseClass,omitempty"`
	YearsExperience *int         `json:"yearsExperience,omitempty"`
	CreatedAt       *time.Time   `json:"createdAt"`
	UpdatedAt       *time.Time   `json:"updatedAt"`
}
