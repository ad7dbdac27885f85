package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// Engine coordinates booking requests end to end: validation,
// availability checks, pricing, reference generation and the atomic
// commit.  It never caches seat state across calls; every check reads
// the store, and the commit itself is the single source of truth for
// who got a seat.
type Engine struct {
	catalog  Catalog
	bookings BookingStore
	refs     *ReferenceGenerator
}

// NewEngine constructs an Engine over the given stores.
func NewEngine(catalog Catalog, bookings BookingStore) *Engine {
	if catalog == nil || bookings == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{
		catalog:  catalog,
		bookings: bookings,
		refs:     NewReferenceGenerator(bookings),
	}
}

// BookSingle books one seat for one user.  On unavailable seats it
// returns a *Rejection naming the seat; no alternatives are attached
// for seat-exact single requests.
func (e *Engine) BookSingle(ctx context.Context, userID, showID, seatID uint64) (*model.Booking, error) {
	created, err := e.book(ctx, userID, showID, []uint64{seatID}, false)
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// BookGroup books a set of seats for one show as a single atomic unit.
// Either every seat's booking is persisted or none are.  When seats
// are unavailable the returned *Rejection lists them, and if the
// caller flagged the request as best-effort (they want seats together,
// not these exact seats) alternative shows are attached.
func (e *Engine) BookGroup(ctx context.Context, userID, showID uint64, seatIDs []uint64, bestEffort bool) ([]*model.Booking, error) {
	return e.book(ctx, userID, showID, seatIDs, bestEffort)
}

// BookConsecutive finds a block of count adjacent seats and books it.
// When no block exists in the requested show the *Rejection carries
// alternative shows of the same movie.  The commit path re-validates
// availability, so a block lost to a concurrent booking fails the
// whole request rather than splitting the group.
func (e *Engine) BookConsecutive(ctx context.Context, userID, showID uint64, count int) ([]*model.Booking, error) {
	if count < 1 {
		return nil, validationf("seat count must be at least 1")
	}
	show, err := e.catalog.ShowByID(ctx, showID)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			return nil, validationf("show %d does not exist", showID)
		}
		return nil, err
	}
	block, err := e.FindConsecutiveSeats(ctx, showID, count)
	if err != nil {
		return nil, err
	}
	if len(block) == 0 {
		rej := &Rejection{
			Reason:  ReasonNoConsecutiveBlock,
			Message: fmt.Sprintf("no %d consecutive seats available for show %d", count, showID),
		}
		if alts, altErr := e.FindAlternatives(ctx, show.MovieID, count, &show.ShowDate); altErr == nil {
			rej.Alternatives = alts
		}
		return nil, rej
	}
	created, err := e.book(ctx, userID, showID, block, false)
	if err != nil {
		// The block was free during the search but taken by the time we
		// validated or committed; offer alternatives instead of a bare
		// unavailable answer.
		var rej *Rejection
		if errors.As(err, &rej) && len(rej.Alternatives) == 0 {
			if alts, altErr := e.FindAlternatives(ctx, show.MovieID, count, &show.ShowDate); altErr == nil {
				rej.Alternatives = alts
			}
		}
		return nil, err
	}
	return created, nil
}

// Cancel sets the booking's status to cancelled, freeing its seat for
// that show.  Cancelling an unknown booking returns
// ErrBookingNotFound; cancelling twice returns ErrAlreadyCancelled.
func (e *Engine) Cancel(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	return e.bookings.Cancel(ctx, bookingID)
}

// book runs the shared commit path: validate, check availability,
// price, generate references, commit atomically.
func (e *Engine) book(ctx context.Context, userID, showID uint64, seatIDs []uint64, bestEffort bool) ([]*model.Booking, error) {
	if len(seatIDs) == 0 {
		return nil, validationf("at least one seat is required")
	}
	show, err := e.catalog.ShowByID(ctx, showID)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			return nil, validationf("show %d does not exist", showID)
		}
		return nil, err
	}
	if err := e.validateSeats(ctx, show, seatIDs); err != nil {
		return nil, err
	}

	ok, taken, err := e.CheckAvailability(ctx, showID, seatIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		rej := &Rejection{
			Reason:           ReasonSeatsUnavailable,
			Message:          fmt.Sprintf("requested seats are not available: %v", taken),
			UnavailableSeats: taken,
		}
		if bestEffort {
			if alts, altErr := e.FindAlternatives(ctx, show.MovieID, len(seatIDs), &show.ShowDate); altErr == nil {
				rej.Alternatives = alts
			}
		}
		return nil, rej
	}

	movie, err := e.catalog.MovieByID(ctx, show.MovieID)
	if err != nil {
		return nil, err
	}
	total := Amount(movie.BasePrice, show.PriceMultiplier, len(seatIDs))
	perSeat := splitEvenly(total, len(seatIDs))
	now := time.Now().UTC()

	bookings := make([]*model.Booking, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		ref, err := e.refs.Generate(ctx)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &model.Booking{
			UserID:      userID,
			ShowID:      showID,
			SeatID:      seatID,
			Reference:   ref,
			AmountPaid:  perSeat,
			Status:      model.BookingStatusConfirmed,
			BookingDate: now,
		})
	}

	// The availability check above is advisory only; the store's
	// test-and-set inside CreateAll decides who actually gets the
	// seats.  Losing that race leaves nothing behind.
	if err := e.bookings.CreateAll(ctx, bookings); err != nil {
		var takenErr *SeatsTakenError
		if errors.As(err, &takenErr) {
			return nil, &TransientError{Op: "commit bookings", Err: takenErr}
		}
		return nil, err
	}
	return bookings, nil
}

// validateSeats enforces the hard preconditions on a seat list: no
// duplicates, every seat exists, and every seat belongs to the show's
// hall.  A seat from another hall is a validation failure, not an
// availability one.
func (e *Engine) validateSeats(ctx context.Context, show *model.Show, seatIDs []uint64) error {
	seen := make(map[uint64]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if id == 0 {
			return validationf("invalid seat id 0")
		}
		if _, dup := seen[id]; dup {
			return validationf("duplicate seat id %d in request", id)
		}
		seen[id] = struct{}{}

		seat, err := e.catalog.SeatByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrSeatNotFound) {
				return validationf("seat %d does not exist", id)
			}
			return err
		}
		if seat.HallID != show.HallID {
			return validationf("seat %d does not belong to the show's hall", id)
		}
	}
	return nil
}
