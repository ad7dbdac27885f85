package model

import "time"

// Booking status values.  A seat is unavailable for a show exactly
// when a confirmed booking exists for the (show, seat) pair.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking records one seat held for one show by one user.  A group
// booking is a set of sibling Booking rows created together in a
// single transaction; each sibling carries an even share of the group
// total in AmountPaid.
//
// Invariant: at most one confirmed booking may exist per (show, seat).
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the booking.
//  ShowID      – show being booked.
//  SeatID      – seat held by this booking.
//  Reference   – globally unique external-facing reference string.
//  AmountPaid  – amount paid for this seat.
//  Status      – confirmed, cancelled or completed.
//  BookingDate – when the booking was made.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	ShowID      uint64    // bookings.show_id
	SeatID      uint64    // bookings.seat_id
	Reference   string    // bookings.booking_reference
	AmountPaid  float64   // bookings.amount_paid
	Status      string    // bookings.status
	BookingDate time.Time // bookings.booking_date
	CreatedAt   time.Time // bookings.created_at
	UpdatedAt   time.Time // bookings.updated_at
}
