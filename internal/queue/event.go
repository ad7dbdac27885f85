// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking commit succeeds.
// A group booking publishes one event covering every sibling seat.  It
// carries enough information for downstream consumers to log, notify or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	UserID      uint64   `json:"user_id"`
	ShowID      uint64   `json:"show_id"`
	MovieTitle  string   `json:"movie_title"`
	TheaterName string   `json:"theater_name"`
	HallName    string   `json:"hall_name"`
	ShowDate    string   `json:"show_date"`
	StartTime   string   `json:"start_time"`
	References  []string `json:"references"`
	SeatIDs     []uint64 `json:"seat_ids"`
	TotalAmount float64  `json:"total_amount"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled and
// its seat returns to the pool.
type BookingCancelledEvent struct {
	BookingID   uint64  `json:"booking_id"`
	UserID      uint64  `json:"user_id"`
	ShowID      uint64  `json:"show_id"`
	SeatID      uint64  `json:"seat_id"`
	Reference   string  `json:"reference"`
	AmountPaid  float64 `json:"amount_paid"`
	CancelledAt string  `json:"cancelled_at"`
}
