package repository

import (
	"database/sql"

	"github.com/ridehub/ms-route/internal/model"
)

// Stores bundles one Store per entity.
type Stores struct {
	Addresses  Store[model.Address]
	Attendants Store[model.Attendant]
	Drivers    Store[model.Driver]
	FileRoutes Store[model.FileRoute]
	Floors     Store[model.Floor]
	SeatMaps   Store[model.SeatMap]
	Staff      Store[model.Staff]
	Wards      Store[model.Ward]
}

// NewSQLStores backs every entity with MySQL.
func NewSQLStores(db *sql.DB) *Stores {
	return &Stores{
		Addresses:  NewSQLStore(db, AddressTable),
		Attendants: NewSQLStore(db, AttendantTable),
		Drivers:    NewSQLStore(db, DriverTable),
		FileRoutes: NewSQLStore(db, FileRouteTable),
		Floors:     NewSQLStore(db, FloorTable),
		SeatMaps:   NewSQLStore(db, SeatMapTable),
		Staff:      NewSQLStore(db, StaffTable),
		Wards:      NewSQLStore(db, WardTable),
	}
}

// NewMemoryStores keeps everything in process memory.
func NewMemoryStores() *Stores {
	return &Stores{
		Addresses:  NewMemoryStore(AddressTable),
		Attendants: NewMemoryStore(AttendantTable),
		Drivers:    NewMemoryStore(DriverTable),
		FileRoutes: NewMemoryStore(FileRouteTable),
		Floors:     NewMemoryStore(FloorTable),
		SeatMaps:   NewMemoryStore(SeatMapTable),
		Staff:      NewMemoryStore(StaffTable),
		Wards:      NewMemoryStore(WardTable),
	}
}
