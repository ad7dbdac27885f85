package allocation

import (
	"context"
	"time"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// FindAlternatives scans the movie's other upcoming shows for one that
// can seat count people together.  Shows are visited in (date, start
// time) order starting from today, so suggestions come back in
// chronological order with no re-ranking by price or venue.  A show on
// excludeDate (the date the caller already tried) is skipped.
//
// This is an exhaustive linear scan over the movie's shows, each of
// which runs a full consecutive-block search.  Acceptable while show
// volume per movie stays small; an index on (movie, date) plus per-row
// availability bitmaps would be the upgrade path.
func (e *Engine) FindAlternatives(ctx context.Context, movieID uint64, count int, excludeDate *time.Time) ([]model.Suggestion, error) {
	if count < 1 {
		return nil, validationf("seat count must be at least 1")
	}
	movie, err := e.catalog.MovieByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	today := truncateToDate(time.Now().UTC())
	shows, err := e.catalog.ActiveShowsByMovie(ctx, movieID, today)
	if err != nil {
		return nil, err
	}

	suggestions := make([]model.Suggestion, 0)
	for _, show := range shows {
		if excludeDate != nil && sameDate(show.ShowDate, *excludeDate) {
			continue
		}
		block, err := e.FindConsecutiveSeats(ctx, show.ID, count)
		if err != nil {
			return nil, err
		}
		if len(block) == 0 {
			continue
		}
		hall, err := e.catalog.HallByID(ctx, show.HallID)
		if err != nil {
			return nil, err
		}
		theater, err := e.catalog.TheaterByID(ctx, hall.TheaterID)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, model.Suggestion{
			ShowID:      show.ID,
			MovieTitle:  movie.Title,
			TheaterName: theater.Name,
			HallName:    hall.Name,
			ShowDate:    show.ShowDate,
			StartTime:   show.StartTime,
			SeatIDs:     block,
			SeatCount:   len(block),
		})
	}
	return suggestions, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
