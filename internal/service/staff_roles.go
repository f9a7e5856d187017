package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ridehub/ms-route/internal/model"
)

// RoleBinding adapts a staff role entity (driver, attendant) to the
// flattened SimpleStaffRole view.
type RoleBinding[T any] struct {
	ID    func(*T) *int64
	Staff func(*T) *model.Ref
	// New builds a role row for a freshly created staff record.
	New func(req *model.SimpleStaffRole, staffID int64, now time.Time) *T
	// Apply copies the role-specific request fields onto an existing row.
	Apply func(role *T, req *model.SimpleStaffRole, now time.Time)
	// Describe fills the role-specific fields and timestamps of out.
	Describe func(role *T, out *model.SimpleStaffRole)
}

// StaffRoles creates and edits a role together with its staff record.
type StaffRoles[T any] struct {
	staff *Service[model.Staff]
	roles *Service[T]
	bind  RoleBinding[T]
	log   *slog.Logger
	now   func() time.Time
}

func NewStaffRoles[T any](staff *Service[model.Staff], roles *Service[T], bind RoleBinding[T], log *slog.Logger) *StaffRoles[T] {
	if log == nil {
		log = slog.Default()
	}
	return &StaffRoles[T]{staff: staff, roles: roles, bind: bind, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// CreateSimple creates the staff record first, then the role linked to it.
// When the role cannot be created the staff record is removed again.
func (r *StaffRoles[T]) CreateSimple(ctx context.Context, req *model.SimpleStaffRole) (*model.SimpleStaffRole, error) {
	if err := validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(r.roles.Entity(), err)
	}
	now := r.now()
	status := model.StaffActive
	if req.Status != nil {
		status = *req.Status
	}
	notDeleted := false
	staff, err := r.staff.Create(ctx, &model.Staff{
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Status:      &status,
		CreatedAt:   &now,
		IsDeleted:   &notDeleted,
	})
	if err != nil {
		return nil, err
	}

	role, err := r.roles.Create(ctx, r.bind.New(req, *staff.ID, now))
	if err != nil {
		if derr := r.staff.Delete(ctx, *staff.ID); derr != nil {
			r.log.ErrorContext(ctx, "orphaned staff record after failed role create",
				"entity", r.roles.Entity(), "staff_id", *staff.ID, "err", derr)
		}
		return nil, err
	}
	return r.view(role, staff), nil
}

// UpdateSimple overwrites the staff fields and the role fields of role id.
// A nil status keeps the current one.
func (r *StaffRoles[T]) UpdateSimple(ctx context.Context, id int64, req *model.SimpleStaffRole) (*model.SimpleStaffRole, error) {
	role, err := r.roles.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(r.roles.Entity(), err)
	}
	ref := r.bind.Staff(role)
	if ref == nil {
		return nil, &ValidationError{Entity: r.roles.Entity(), Field: "staff", Reason: KeyRequired}
	}
	staff, err := r.staff.FindOne(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	r.bind.Apply(role, req, now)
	if err := r.roles.check(ctx, role); err != nil {
		return nil, err
	}

	prev := *staff
	staff.Name = req.Name
	staff.Age = req.Age
	staff.Gender = req.Gender
	staff.PhoneNumber = req.PhoneNumber
	if req.Status != nil {
		staff.Status = req.Status
	}
	staff.UpdatedAt = &now
	if staff, err = r.staff.Update(ctx, ref.ID, staff); err != nil {
		return nil, err
	}

	if role, err = r.roles.Update(ctx, id, role); err != nil {
		if _, rerr := r.staff.Update(ctx, ref.ID, &prev); rerr != nil {
			r.log.ErrorContext(ctx, "staff record left updated after failed role update",
				"entity", r.roles.Entity(), "staff_id", ref.ID, "err", rerr)
		}
		return nil, fmt.Errorf("update %s after staff %d: %w", r.roles.Entity(), ref.ID, err)
	}
	return r.view(role, staff), nil
}

// FindSimple returns the flattened view of role id.
func (r *StaffRoles[T]) FindSimple(ctx context.Context, id int64) (*model.SimpleStaffRole, error) {
	role, err := r.roles.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	var staff *model.Staff
	if ref := r.bind.Staff(role); ref != nil {
		if staff, err = r.staff.FindOne(ctx, ref.ID); err != nil {
			return nil, err
		}
	}
	return r.view(role, staff), nil
}

func (r *StaffRoles[T]) view(role *T, staff *model.Staff) *model.SimpleStaffRole {
	out := &model.SimpleStaffRole{ID: r.bind.ID(role)}
	r.bind.Describe(role, out)
	if staff != nil {
		out.StaffID = staff.ID
		out.Name = staff.Name
		out.Age = staff.Age
		out.Gender = staff.Gender
		out.PhoneNumber = staff.PhoneNumber
		out.Status = staff.Status
	}
	return out
}
