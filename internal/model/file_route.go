package model

import (
	"time"

	"github.com/google/uuid"
)

// FileRoute points at an object in blob storage (bucket + key). Seat map
// images are stored this way.
type FileRoute struct {
	ID          *int64     `json:"id"`
	Bucket      *string    `json:"bucket" validate:"required"`
	ObjectKey   *string    `json:"objectKey" validate:"required"`
	ContentType *string    `json:"contentType"`
	Size        *int64     `json:"size"`
	CreatedAt   *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	IsDeleted   *bool      `json:"isDeleted"`
	DeletedAt   *time.Time `json:"deletedAt"`
	DeletedBy   *uuid.UUID `json:"deletedBy"`
}
