package model

import "time"

// Seat types recognised by the layout provisioner.
const (
	SeatTypeStandard = "standard"
	SeatTypePremium  = "premium"
)

// Seat describes a physical seat in a hall.  Seats are identified by
// their row number and seat number within the row; both are 1-based.
// A seat carries no booking state of its own — whether it is taken for
// a given show is derived from confirmed bookings.
//
// Fields:
//  ID         – primary key identifier.
//  HallID     – hall to which this seat belongs.
//  RowNumber  – row position, starting at 1.
//  SeatNumber – position within the row, starting at 1, unique per row.
//  SeatType   – seat class (standard, premium).
//  IsAisle    – whether the seat borders an aisle.
//  CreatedAt  – creation timestamp.
type Seat struct {
	ID         uint64    // seats.id
	HallID     uint64    // seats.hall_id
	RowNumber  uint32    // seats.row_num
	SeatNumber uint32    // seats.seat_number
	SeatType   string    // seats.seat_type
	IsAisle    bool      // seats.is_aisle
	CreatedAt  time.Time // seats.created_at
}
