package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// Catalog bundles the read-side lookups the allocation engine needs
// into one value.  Each method delegates to the entity repository so
// handlers and the engine share the same queries.
type Catalog struct {
	Movies   *MovieRepo
	Theaters *TheaterRepo
	Halls    *HallRepo
	Seats    *SeatRepo
	Shows    *ShowRepo
}

// NewCatalog constructs a Catalog over the given DB handle.
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{
		Movies:   NewMovieRepo(db),
		Theaters: NewTheaterRepo(db),
		Halls:    NewHallRepo(db),
		Seats:    NewSeatRepo(db),
		Shows:    NewShowRepo(db),
	}
}

func (c *Catalog) MovieByID(ctx context.Context, id uint64) (*model.Movie, error) {
	return c.Movies.GetByID(ctx, id)
}

func (c *Catalog) ShowByID(ctx context.Context, id uint64) (*model.Show, error) {
	return c.Shows.GetByID(ctx, id)
}

func (c *Catalog) HallByID(ctx context.Context, id uint64) (*model.Hall, error) {
	return c.Halls.GetByID(ctx, id)
}

func (c *Catalog) TheaterByID(ctx context.Context, id uint64) (*model.Theater, error) {
	return c.Theaters.GetByID(ctx, id)
}

func (c *Catalog) SeatByID(ctx context.Context, id uint64) (*model.Seat, error) {
	return c.Seats.GetByID(ctx, id)
}

func (c *Catalog) SeatsByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	return c.Seats.GetByHall(ctx, hallID)
}

func (c *Catalog) ActiveShowsByMovie(ctx context.Context, movieID uint64, from time.Time) ([]model.Show, error) {
	return c.Shows.ActiveByMovieFrom(ctx, movieID, from)
}
