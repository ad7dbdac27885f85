// Package metrics exposes Prometheus counters for the booking engine.
// The /metrics endpoint is served by promhttp in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsConfirmed counts seats successfully booked, labelled by
	// how the seats were chosen.
	BookingsConfirmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "movieticket",
		Name:      "bookings_confirmed_total",
		Help:      "Seats successfully booked.",
	}, []string{"mode"})

	// BookingsRejected counts booking requests turned down, labelled
	// by rejection reason (seats_unavailable, no_consecutive_block).
	BookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "movieticket",
		Name:      "bookings_rejected_total",
		Help:      "Booking requests rejected.",
	}, []string{"reason"})

	// CommitConflicts counts commits lost to a concurrent booking
	// after the availability check passed.
	CommitConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "movieticket",
		Name:      "booking_commit_conflicts_total",
		Help:      "Booking commits lost to a concurrent request.",
	})

	// BookingsCancelled counts cancelled bookings.
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "movieticket",
		Name:      "bookings_cancelled_total",
		Help:      "Bookings cancelled.",
	})
)

// Booking modes used as the "mode" label on BookingsConfirmed.
const (
	ModeSingle      = "single"
	ModeGroup       = "group"
	ModeConsecutive = "consecutive"
)
