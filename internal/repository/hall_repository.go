package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// HallRepo provides methods to work with halls in the database.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a hall record. On success the hall's ID is populated.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO halls (theater_id, name, total_rows) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.TheaterID, h.Name, h.TotalRows)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID retrieves a hall by its id.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT id, theater_id, name, total_rows, created_at, updated_at
	           FROM halls WHERE id = ?`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.TheaterID, &h.Name, &h.TotalRows, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListByTheater retrieves all halls of a theater ordered by name.
func (r *HallRepo) ListByTheater(ctx context.Context, theaterID uint64) ([]model.Hall, error) {
	const q = `SELECT id, theater_id, name, total_rows, created_at, updated_at
	           FROM halls WHERE theater_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Hall
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.ID, &h.TheaterID, &h.Name, &h.TotalRows, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
