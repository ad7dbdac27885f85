package allocation

import "math"

// Amount computes the price for seatCount seats of a show: the movie's
// base price times the show's multiplier times the seat count, rounded
// to two decimal places.  Pure function; callers guarantee positive
// inputs.
func Amount(basePrice, multiplier float64, seatCount int) float64 {
	return round2(basePrice * multiplier * float64(seatCount))
}

// splitEvenly divides a group total across its siblings.  Each sibling
// carries total/count rather than a recomputed per-seat price so the
// shares always sum back to the group total.
func splitEvenly(total float64, count int) float64 {
	return total / float64(count)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
