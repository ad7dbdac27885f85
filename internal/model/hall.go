package model

import "time"

// Hall represents a screening hall inside a theater.  A hall owns a
// fixed seat layout created at provisioning time; every show scheduled
// in the hall shares that layout as its seat universe.
//
// Fields:
//  ID        – primary key identifier.
//  TheaterID – theater containing this hall.
//  Name      – hall name, unique per theater.
//  TotalRows – number of seating rows in the layout.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
	ID        uint64    // halls.id
	TheaterID uint64    // halls.theater_id
	Name      string    // halls.name
	TotalRows uint32    // halls.total_rows
	CreatedAt time.Time // halls.created_at
	UpdatedAt time.Time // halls.updated_at
}
