package allocation

import (
	"context"
	"sort"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// FindConsecutiveSeats locates count free seats in one row of the
// show's hall whose seat numbers form an unbroken sequence.  Rows are
// scanned in ascending row-number order and, within a row, from the
// lowest seat number upward, so results are deterministic.  A run
// interrupted by a booked seat number, or one that skips a number in
// the layout, does not qualify.
//
// The selected run is re-checked against the store before being
// returned, since concurrent bookings may have landed between the scan
// and the decision; a run that lost the race is skipped and the scan
// continues.  No qualifying run yields a nil slice, not an error.
func (e *Engine) FindConsecutiveSeats(ctx context.Context, showID uint64, count int) ([]uint64, error) {
	if count < 1 {
		return nil, validationf("seat count must be at least 1")
	}
	show, err := e.catalog.ShowByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	seats, err := e.catalog.SeatsByHall(ctx, show.HallID)
	if err != nil {
		return nil, err
	}
	booked, err := e.bookings.ConfirmedSeatSet(ctx, showID)
	if err != nil {
		return nil, err
	}

	byRow := make(map[uint32][]model.Seat)
	for _, s := range seats {
		byRow[s.RowNumber] = append(byRow[s.RowNumber], s)
	}
	rows := make([]uint32, 0, len(byRow))
	for r := range byRow {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })

	for _, row := range rows {
		rowSeats := byRow[row]
		sort.Slice(rowSeats, func(i, j int) bool { return rowSeats[i].SeatNumber < rowSeats[j].SeatNumber })

		available := rowSeats[:0:0]
		for _, s := range rowSeats {
			if _, taken := booked[s.ID]; !taken {
				available = append(available, s)
			}
		}
		if len(available) < count {
			continue
		}
		for i := 0; i+count <= len(available); i++ {
			run := available[i : i+count]
			if !numbersConsecutive(run) {
				continue
			}
			ids := make([]uint64, count)
			for j, s := range run {
				ids[j] = s.ID
			}
			ok, _, err := e.CheckAvailability(ctx, showID, ids)
			if err != nil {
				return nil, err
			}
			if ok {
				return ids, nil
			}
		}
	}
	return nil, nil
}

// numbersConsecutive reports whether the seats' numbers form a strictly
// sequential run.  An available window containing a hole (a booked or
// missing seat number) fails this test even though every seat in it is
// free.
func numbersConsecutive(run []model.Seat) bool {
	for i := 1; i < len(run); i++ {
		if run[i].SeatNumber != run[i-1].SeatNumber+1 {
			return false
		}
	}
	return true
}
