package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// TheaterRepo provides methods to work with theaters in the database.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo {
	return &TheaterRepo{db: db}
}

// Create inserts a theater record. On success the theater's ID is populated.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
	const q = `INSERT INTO theaters (name, address, city, state, contact_number)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Address, t.City, t.State, t.ContactNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves a theater by its id.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	const q = `SELECT id, name, address, city, state, contact_number, created_at, updated_at
	           FROM theaters WHERE id = ?`
	var (
		t       model.Theater
		state   sql.NullString
		contact sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.Name, &t.Address, &t.City, &state, &contact, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrTheaterNotFound
		}
		return nil, err
	}
	if state.Valid {
		t.State = &state.String
	}
	if contact.Valid {
		t.ContactNumber = &contact.String
	}
	return &t, nil
}

// ListByCity returns theaters in a city ordered by name. An empty city
// returns all theaters.
func (r *TheaterRepo) ListByCity(ctx context.Context, city string) ([]model.Theater, error) {
	q := `SELECT id, name, address, city, state, contact_number, created_at, updated_at
	      FROM theaters`
	args := []interface{}{}
	if city != "" {
		q += ` WHERE city = ?`
		args = append(args, city)
	}
	q += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Theater
	for rows.Next() {
		var (
			t       model.Theater
			state   sql.NullString
			contact sql.NullString
		)
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Address, &t.City, &state, &contact, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if state.Valid {
			t.State = &state.String
		}
		if contact.Valid {
			t.ContactNumber = &contact.String
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
