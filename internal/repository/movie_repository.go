package repository // repository defines data access for the booking domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// MovieRepo provides methods to work with movies in the database.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a movie record. On success the movie's ID is populated.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, description, duration_minutes, genre, language, base_price)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMinutes, m.Genre, m.Language, m.BasePrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID retrieves a movie by its id.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, title, description, duration_minutes, genre, language, base_price, created_at, updated_at
	           FROM movies WHERE id = ?`
	var (
		m           model.Movie
		description sql.NullString
		genre       sql.NullString
		language    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Title, &description, &m.DurationMinutes, &genre, &language,
		&m.BasePrice, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrMovieNotFound
		}
		return nil, err
	}
	if description.Valid {
		m.Description = &description.String
	}
	if genre.Valid {
		m.Genre = &genre.String
	}
	if language.Valid {
		m.Language = &language.String
	}
	return &m, nil
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, title, description, duration_minutes, genre, language, base_price, created_at, updated_at
	           FROM movies ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Movie
	for rows.Next() {
		var (
			m           model.Movie
			description sql.NullString
			genre       sql.NullString
			language    sql.NullString
		)
		if err := rows.Scan(
			&m.ID, &m.Title, &description, &m.DurationMinutes, &genre, &language,
			&m.BasePrice, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			m.Description = &description.String
		}
		if genre.Valid {
			m.Genre = &genre.String
		}
		if language.Valid {
			m.Language = &language.String
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
