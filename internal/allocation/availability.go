package allocation

import "context"

// CheckAvailability reports whether every requested seat is free for
// the show and lists the ones already held by a confirmed booking.
// Pure read; the result is only as fresh as the moment it was taken,
// so committing code must re-verify inside the transaction.
//
// The seat list must be non-empty; callers reject empty requests
// upstream.
func (e *Engine) CheckAvailability(ctx context.Context, showID uint64, seatIDs []uint64) (bool, []uint64, error) {
	if len(seatIDs) == 0 {
		return false, nil, validationf("seat list must not be empty")
	}
	taken, err := e.bookings.ConfirmedSeats(ctx, showID, seatIDs)
	if err != nil {
		return false, nil, err
	}
	return len(taken) == 0, taken, nil
}
