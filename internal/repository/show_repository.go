package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// ShowRepo provides methods to work with shows in the database.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

const showColumns = `id, movie_id, hall_id, show_date, start_time, end_time, price_multiplier, status, created_at, updated_at`

func scanShow(row interface {
	Scan(dest ...interface{}) error
}) (*model.Show, error) {
	var s model.Show
	err := row.Scan(
		&s.ID, &s.MovieID, &s.HallID, &s.ShowDate, &s.StartTime, &s.EndTime,
		&s.PriceMultiplier, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a show record. On success the show's ID is populated.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (movie_id, hall_id, show_date, start_time, end_time, price_multiplier, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.MovieID, s.HallID, s.ShowDate.Format("2006-01-02"), s.StartTime, s.EndTime,
		s.PriceMultiplier, s.Status,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a show by its id.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE id = ?`
	s, err := scanShow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrShowNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByMovie retrieves all shows of a movie ordered by date then
// start time.
func (r *ShowRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows
	           WHERE movie_id = ?
	           ORDER BY show_date, start_time`
	return r.list(ctx, q, movieID)
}

// ActiveByMovieFrom retrieves active shows of a movie on or after the
// given date, ordered by date then start time.  This ordering is the
// ranking used for alternative suggestions.
func (r *ShowRepo) ActiveByMovieFrom(ctx context.Context, movieID uint64, from time.Time) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows
	           WHERE movie_id = ? AND status = ? AND show_date >= ?
	           ORDER BY show_date, start_time`
	return r.list(ctx, q, movieID, model.ShowStatusActive, from.Format("2006-01-02"))
}

// UpdateStatus transitions a show to the given status.
func (r *ShowRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE shows SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return allocation.ErrShowNotFound
	}
	return nil
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Show
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
