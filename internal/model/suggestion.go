package model

import "time"

// Suggestion is an alternative booking option offered when a requested
// show cannot seat a group together: a different show of the same
// movie (possibly in another theater) with a consecutive seat block
// large enough for the party.
type Suggestion struct {
	ShowID      uint64    `json:"show_id"`
	MovieTitle  string    `json:"movie_title"`
	TheaterName string    `json:"theater_name"`
	HallName    string    `json:"hall_name"`
	ShowDate    time.Time `json:"show_date"`
	StartTime   string    `json:"start_time"`
	SeatIDs     []uint64  `json:"available_seats"`
	SeatCount   int       `json:"total_available"`
}
