// Package allocation implements the seat-inventory allocation engine:
// availability checks, consecutive-block search, cross-show alternative
// suggestions, booking-reference generation, pricing and the atomic
// multi-seat booking flow.  All shared state lives behind the Catalog
// and BookingStore interfaces; the engine holds nothing mutable between
// requests, so independent requests may run concurrently.
package allocation

import (
	"context"
	"time"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// Catalog provides read-only entity lookups the engine needs while
// allocating seats.  Implementations must return the package sentinel
// errors (ErrMovieNotFound, ErrShowNotFound, ...) for missing rows.
type Catalog interface {
	// MovieByID returns the movie with the given id.
	MovieByID(ctx context.Context, id uint64) (*model.Movie, error)
	// ShowByID returns the show with the given id.
	ShowByID(ctx context.Context, id uint64) (*model.Show, error)
	// HallByID returns the hall with the given id.
	HallByID(ctx context.Context, id uint64) (*model.Hall, error)
	// TheaterByID returns the theater with the given id.
	TheaterByID(ctx context.Context, id uint64) (*model.Theater, error)
	// SeatByID returns the seat with the given id.
	SeatByID(ctx context.Context, id uint64) (*model.Seat, error)
	// SeatsByHall returns every seat of a hall ordered by row number
	// then seat number.
	SeatsByHall(ctx context.Context, hallID uint64) ([]model.Seat, error)
	// ActiveShowsByMovie returns the movie's active shows whose date is
	// on or after from, ordered by (show date, start time) ascending.
	ActiveShowsByMovie(ctx context.Context, movieID uint64, from time.Time) ([]model.Show, error)
}

// BookingStore owns booking persistence.  CreateAll is the single
// point where the at-most-one-confirmed-booking-per-(show,seat)
// invariant is enforced: it must atomically test-and-set the confirmed
// state of every seat in the batch and persist either all rows or none.
type BookingStore interface {
	// ConfirmedSeats returns the subset of seatIDs that currently have
	// a confirmed booking for the show.  Pure read.
	ConfirmedSeats(ctx context.Context, showID uint64, seatIDs []uint64) ([]uint64, error)
	// ConfirmedSeatSet returns the ids of every seat with a confirmed
	// booking for the show.
	ConfirmedSeatSet(ctx context.Context, showID uint64) (map[uint64]struct{}, error)
	// ReferenceExists reports whether a booking with the given
	// reference already exists.
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	// CreateAll persists the given bookings as one atomic unit.  When
	// any (show, seat) pair already holds a confirmed booking it
	// persists nothing and returns a *SeatsTakenError naming the seats
	// that lost the race.
	CreateAll(ctx context.Context, bookings []*model.Booking) error
	// BookingByID returns the booking with the given id or
	// ErrBookingNotFound.
	BookingByID(ctx context.Context, id uint64) (*model.Booking, error)
	// Cancel marks the booking cancelled and returns the updated row.
	// It returns ErrBookingNotFound for unknown ids and
	// ErrAlreadyCancelled when the booking is already cancelled.
	Cancel(ctx context.Context, id uint64) (*model.Booking, error)
}
