package allocation

import (
	"errors"
	"fmt"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// Sentinel errors returned by Catalog and BookingStore implementations
// when a lookup yields no row.  Handlers translate these into HTTP 404
// responses.
var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrShowNotFound    = errors.New("show not found")
	ErrHallNotFound    = errors.New("hall not found")
	ErrTheaterNotFound = errors.New("theater not found")
	ErrSeatNotFound    = errors.New("seat not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// ErrAlreadyCancelled is returned when cancelling a booking that has
// already been cancelled.  Cancellation is never a silent no-op.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ValidationError reports malformed or inconsistent input: an empty or
// duplicated seat list, a seat from another hall, a nonexistent show or
// seat id.  It fails fast and is never worth retrying.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// SeatsTakenError is returned by BookingStore.CreateAll when the
// commit-time test-and-set finds a confirmed booking already holding
// one of the requested seats.  Nothing has been persisted.
type SeatsTakenError struct {
	SeatIDs []uint64
}

func (e *SeatsTakenError) Error() string {
	return fmt.Sprintf("seats already booked: %v", e.SeatIDs)
}

// TransientError wraps failures that left nothing behind and are safe
// to retry as a whole request: losing the commit race, exhausting the
// reference generator.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// Rejection reasons.
const (
	ReasonSeatsUnavailable   = "seats_unavailable"
	ReasonNoConsecutiveBlock = "no_consecutive_block"
)

// Rejection is returned when a booking request cannot be satisfied but
// the request itself was well-formed.  Where feasible it carries
// actionable alternatives instead of a bare failure.
type Rejection struct {
	Reason           string
	Message          string
	UnavailableSeats []uint64
	Alternatives     []model.Suggestion
}

func (r *Rejection) Error() string { return r.Message }
