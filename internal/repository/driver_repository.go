package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

var DriverSchema = criteria.NewSchema[model.Driver]("driver",
	criteria.ID(func(d *model.Driver) *int64 { return d.ID }),
	criteria.String("licenseClass", "license_class", func(d *model.Driver) *string { return d.LicenseClass }),
	criteria.Integer("yearsExperience", "years_experience", func(d *model.Driver) *int { return d.YearsExperience }),
	criteria.Instant("createdAt", "created_at", func(d *model.Driver) *time.Time { return d.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(d *model.Driver) *time.Time { return d.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(d *model.Driver) *bool { return d.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(d *model.Driver) *time.Time { return d.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(d *model.Driver) *uuid.UUID { return d.DeletedBy }),
	criteria.Relation("staffId", "staff_id", func(d *model.Driver) *int64 { return model.RefID(d.Staff) }),
)

var DriverTable = &Table[model.Driver]{
	Entity:  "Driver",
	Schema:  DriverSchema,
	Columns: columns([]string{"license_class", "years_experience"}, auditColumns, []string{"staff_id"}),
	ID:      func(d *model.Driver) *int64 { return d.ID },
	SetID:   func(d *model.Driver, id int64) { d.ID = &id },
	Args: func(d *model.Driver) []any {
		return []any{d.LicenseClass, d.YearsExperience,
			d.CreatedAt, d.UpdatedAt, d.IsDeleted, d.DeletedAt, uuidArg(d.DeletedBy),
			model.RefID(d.Staff)}
	},
	Scan: func(row RowScanner) (*model.Driver, error) {
		var d model.Driver
		var staffID *int64
		if err := row.Scan(&d.ID, &d.LicenseClass, &d.YearsExperience,
			&d.CreatedAt, &d.UpdatedAt, &d.IsDeleted, &d.DeletedAt, &d.DeletedBy, &staffID); err != nil {
			return nil, err
		}
		d.Staff = model.RefFrom(staffID)
		return &d, nil
	},
}
