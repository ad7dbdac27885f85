package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// BookingRepo provides methods to work with bookings in the database.
// It is the allocation engine's BookingStore: CreateAll is the single
// point where seats are actually won or lost.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `id, user_id, show_id, seat_id, booking_reference, amount_paid, status, booking_date, created_at, updated_at`

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.ShowID, &b.SeatID, &b.Reference, &b.AmountPaid,
		&b.Status, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ConfirmedSeats returns the subset of seatIDs that already hold a
// confirmed booking for the show, in ascending order.
func (r *BookingRepo) ConfirmedSeats(ctx context.Context, showID uint64, seatIDs []uint64) ([]uint64, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	query := `SELECT seat_id FROM bookings WHERE show_id = ? AND status = ? AND seat_id IN (`
	args := make([]interface{}, 0, len(seatIDs)+2)
	args = append(args, showID, model.BookingStatusConfirmed)
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY seat_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taken []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		taken = append(taken, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// ConfirmedSeatSet returns every seat with a confirmed booking for the
// show as a set.
func (r *BookingRepo) ConfirmedSeatSet(ctx context.Context, showID uint64) (map[uint64]struct{}, error) {
	const q = `SELECT seat_id FROM bookings WHERE show_id = ? AND status = ?`
	rows, err := r.db.QueryContext(ctx, q, showID, model.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		taken[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// ReferenceExists reports whether any booking carries the reference.
func (r *BookingRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE booking_reference = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, reference).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateAll inserts every booking in one transaction, or none of them.
// Inside the transaction the requested seats' confirmed rows are read
// FOR UPDATE; under InnoDB the locking read serializes rival commits
// for the same (show, seat) pairs, so the subsequent inserts cannot
// double-book.  When any seat is already taken the transaction rolls
// back and a *allocation.SeatsTakenError names the lost seats.
func (r *BookingRepo) CreateAll(ctx context.Context, bookings []*model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	showID := bookings[0].ShowID
	lockQ := `SELECT seat_id FROM bookings WHERE show_id = ? AND status = ? AND seat_id IN (`
	args := make([]interface{}, 0, len(bookings)+2)
	args = append(args, showID, model.BookingStatusConfirmed)
	for i, b := range bookings {
		if i > 0 {
			lockQ += ","
		}
		lockQ += "?"
		args = append(args, b.SeatID)
	}
	lockQ += `) FOR UPDATE`

	rows, err := tx.QueryContext(ctx, lockQ, args...)
	if err != nil {
		return err
	}
	var lost []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		lost = append(lost, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()
	if len(lost) > 0 {
		return &allocation.SeatsTakenError{SeatIDs: lost}
	}

	insQ := `INSERT INTO bookings (user_id, show_id, seat_id, booking_reference, amount_paid, status, booking_date) VALUES `
	insArgs := make([]interface{}, 0, len(bookings)*7)
	for i, b := range bookings {
		if i > 0 {
			insQ += ","
		}
		insQ += "(?, ?, ?, ?, ?, ?, ?)"
		insArgs = append(insArgs, b.UserID, b.ShowID, b.SeatID, b.Reference, b.AmountPaid, b.Status, b.BookingDate)
	}
	res, err := tx.ExecContext(ctx, insQ, insArgs...)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	// MySQL hands back the first auto id of a multi-row insert; the
	// rest follow in order.
	firstID, err := res.LastInsertId()
	if err == nil {
		for i, b := range bookings {
			b.ID = uint64(firstID) + uint64(i)
		}
	}
	return nil
}

// GetByID retrieves a booking by its id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// BookingByID satisfies the allocation store interface.
func (r *BookingRepo) BookingByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return r.GetByID(ctx, id)
}

// GetByReference retrieves a booking by its reference string.
func (r *BookingRepo) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser retrieves a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, userID)
}

// ListByShow retrieves all bookings of a show ordered by seat.
func (r *BookingRepo) ListByShow(ctx context.Context, showID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE show_id = ? ORDER BY seat_id`
	return r.list(ctx, q, showID)
}

// Cancel transitions a confirmed booking to cancelled and returns the
// updated row.  Compare-and-swap on status keeps a double cancel from
// silently succeeding.
func (r *BookingRepo) Cancel(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.BookingStatusCancelled, id, model.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Either the booking does not exist or it is no longer
		// confirmed; read it back to tell the two apart.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, allocation.ErrAlreadyCancelled
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
