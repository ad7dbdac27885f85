package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// SeatRepo provides methods to work with seats in the database.  Seats
// carry no booking state; availability for a show is derived from
// confirmed bookings.
//
// The row position column is named row_num because ROW_NUMBER is a
// reserved word in MySQL 8.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts multiple seats in a single statement.  Used when
// provisioning a hall layout.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (hall_id, row_num, seat_number, seat_type, is_aisle) VALUES `
	args := make([]interface{}, 0, len(seats)*5)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, seat.HallID, seat.RowNumber, seat.SeatNumber, seat.SeatType, seat.IsAisle)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, hall_id, row_num, seat_number, seat_type, is_aisle, created_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.HallID, &s.RowNumber, &s.SeatNumber, &s.SeatType, &s.IsAisle, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByHall retrieves all seats of a hall ordered by row then seat
// number.  The ordering matters: consecutive-block search walks rows
// in ascending order and seats left to right.
func (r *SeatRepo) GetByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	const q = `SELECT id, hall_id, row_num, seat_number, seat_type, is_aisle, created_at
	           FROM seats
	           WHERE hall_id = ?
	           ORDER BY row_num, seat_number`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(
			&s.ID, &s.HallID, &s.RowNumber, &s.SeatNumber, &s.SeatType, &s.IsAisle, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByHall returns the hall's total seat count.
func (r *SeatRepo) CountByHall(ctx context.Context, hallID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM seats WHERE hall_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, hallID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
