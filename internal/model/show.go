package model

import "time"

// Show status values.
const (
	ShowStatusActive    = "active"
	ShowStatusCancelled = "cancelled"
	ShowStatusCompleted = "completed"
)

// Show represents a scheduled screening of a movie in a hall.  The
// show's seat universe is exactly the seat set of its hall.  Ticket
// price for the show is movie.BasePrice multiplied by PriceMultiplier.
//
// ShowDate carries the calendar date (midnight UTC); StartTime and
// EndTime are clock times in "HH:MM:SS" form.  Keeping them separate
// matches the storage schema and makes (date, start time) ordering a
// plain two-column sort.
type Show struct {
	ID              uint64    // shows.id
	MovieID         uint64    // shows.movie_id
	HallID          uint64    // shows.hall_id
	ShowDate        time.Time // shows.show_date (DATE, midnight UTC)
	StartTime       string    // shows.start_time ("15:04:05")
	EndTime         string    // shows.end_time   ("15:04:05")
	PriceMultiplier float64   // shows.price_multiplier
	Status          string    // shows.status
	CreatedAt       time.Time // shows.created_at
	UpdatedAt       time.Time // shows.updated_at
}
