package service

import (
	"log/slog"
	"time"

	"github.com/ridehub/ms-route/internal/model"
	"github.com/ridehub/ms-route/internal/repository"
)

// Services is the full set of entity services wired to one Stores.
type Services struct {
	Addresses  *Service[model.Address]
	Attendants *Service[model.Attendant]
	Drivers    *Service[model.Driver]
	FileRoutes *Service[model.FileRoute]
	Floors     *Service[model.Floor]
	SeatMaps   *Service[model.SeatMap]
	Staff      *Service[model.Staff]
	Wards      *Service[model.Ward]

	SimpleDrivers    *StaffRoles[model.Driver]
	SimpleAttendants *StaffRoles[model.Attendant]
}

func NewServices(st *repository.Stores, events Publisher, log *slog.Logger) *Services {
	s := &Services{
		Addresses: New(repository.AddressTable, st.Addresses, events, log, Relation[model.Address]{
			Field: "ward", ID: func(a *model.Address) *int64 { return model.RefID(a.Ward) }, Exists: st.Wards.Exists,
		}),
		Attendants: New(repository.AttendantTable, st.Attendants, events, log, Relation[model.Attendant]{
			Field: "staff", ID: func(a *model.Attendant) *int64 { return model.RefID(a.Staff) }, Exists: st.Staff.Exists,
		}),
		Drivers: New(repository.DriverTable, st.Drivers, events, log, Relation[model.Driver]{
			Field: "staff", ID: func(d *model.Driver) *int64 { return model.RefID(d.Staff) }, Exists: st.Staff.Exists,
		}),
		FileRoutes: New(repository.FileRouteTable, st.FileRoutes, events, log),
		Floors: New(repository.FloorTable, st.Floors, events, log, Relation[model.Floor]{
			Field: "seatMap", ID: func(f *model.Floor) *int64 { return model.RefID(f.SeatMap) }, Exists: st.SeatMaps.Exists,
		}),
		SeatMaps: New(repository.SeatMapTable, st.SeatMaps, events, log, Relation[model.SeatMap]{
			Field: "seatMapImg", ID: func(m *model.SeatMap) *int64 { return model.RefID(m.SeatMapImg) }, Exists: st.FileRoutes.Exists,
		}),
		Staff: New(repository.StaffTable, st.Staff, events, log),
		Wards: New(repository.WardTable, st.Wards, events, log),
	}
	s.SimpleDrivers = NewStaffRoles(s.Staff, s.Drivers, driverBinding, log)
	s.SimpleAttendants = NewStaffRoles(s.Staff, s.Attendants, attendantBinding, log)
	return s
}

var driverBinding = RoleBinding[model.Driver]{
	ID:    func(d *model.Driver) *int64 { return d.ID },
	Staff: func(d *model.Driver) *model.Ref { return d.Staff },
	New: func(req *model.SimpleStaffRole, staffID int64, now time.Time) *model.Driver {
		notDeleted := false
		return &model.Driver{
			LicenseClass:    req.LicenseClass,
			YearsExperience: req.YearsExperience,
			CreatedAt:       &now,
			IsDeleted:       &notDeleted,
			Staff:           model.NewRef(staffID),
		}
	},
	Apply: func(d *model.Driver, req *model.SimpleStaffRole, now time.Time) {
		d.LicenseClass = req.LicenseClass
		d.YearsExperience = req.YearsExperience
		d.UpdatedAt = &now
	},
	Describe: func(d *model.Driver, out *model.SimpleStaffRole) {
		out.LicenseClass = d.LicenseClass
		out.YearsExperience = d.YearsExperience
		out.CreatedAt = d.CreatedAt
		out.UpdatedAt = d.UpdatedAt
	},
}

var attendantBinding = RoleBinding[model.Attendant]{
	ID:    func(a *model.Attendant) *int64 { return a.ID },
	Staff: func(a *model.Attendant) *model.Ref { return a.Staff },
	New: func(_ *model.SimpleStaffRole, staffID int64, now time.Time) *model.Attendant {
		notDeleted := false
		return &model.Attendant{CreatedAt: &now, IsDeleted: &notDeleted, Staff: model.NewRef(staffID)}
	},
	Apply: func(a *model.Attendant, _ *model.SimpleStaffRole, now time.Time) {
		a.UpdatedAt = &now
	},
	Describe: func(a *model.Attendant, out *model.SimpleStaffRole) {
		out.CreatedAt = a.CreatedAt
		out.UpdatedAt = a.UpdatedAt
	},
}
