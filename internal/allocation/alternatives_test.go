package allocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// altFixture extends the base fixture with a second theater/hall and
// more shows of the same movie spread over the coming days.
func altFixture() *memStore {
	m := newFixture()
	m.addTheater(2, "Riverside Multiplex")
	m.addHall(2, 2, "Screen 3", 1)
	for num := uint32(1); num <= 8; num++ {
		m.addSeat(uint64(100+num), 2, 1, num)
	}
	// show 2: same day as show 1 but a later slot, other theater
	m.addShow(2, 1, 2, daysFromNow(1), "21:00:00", 1.0, model.ShowStatusActive)
	// show 3: day after, early slot
	m.addShow(3, 1, 1, daysFromNow(2), "10:00:00", 1.0, model.ShowStatusActive)
	return m
}

func TestFindAlternativesChronologicalOrder(t *testing.T) {
	store := altFixture()
	// show 4 is later in the day than show 3 and must rank after it
	store.addShow(4, 1, 2, daysFromNow(2), "14:00:00", 1.0, model.ShowStatusActive)
	engine := NewEngine(store, store)

	alts, err := engine.FindAlternatives(context.Background(), 1, 3, nil)
	require.NoError(t, err)
	require.Len(t, alts, 4)
	assert.Equal(t, uint64(1), alts[0].ShowID)
	assert.Equal(t, uint64(2), alts[1].ShowID)
	assert.Equal(t, uint64(3), alts[2].ShowID)
	assert.Equal(t, uint64(4), alts[3].ShowID)
}

func TestFindAlternativesSkipsExcludedDate(t *testing.T) {
	store := altFixture()
	engine := NewEngine(store, store)

	exclude := daysFromNow(1)
	alts, err := engine.FindAlternatives(context.Background(), 1, 3, &exclude)
	require.NoError(t, err)
	require.Len(t, alts, 1)
	assert.Equal(t, uint64(3), alts[0].ShowID)
}

func TestFindAlternativesOmitsInfeasibleShows(t *testing.T) {
	store := altFixture()
	// fill show 2's hall so no 3-seat block survives
	for num := uint64(101); num <= 108; num += 2 {
		store.bookSeat(2, num)
	}
	engine := NewEngine(store, store)

	alts, err := engine.FindAlternatives(context.Background(), 1, 3, nil)
	require.NoError(t, err)
	for _, alt := range alts {
		assert.NotEqual(t, uint64(2), alt.ShowID)
	}
	require.Len(t, alts, 2)
}

func TestFindAlternativesOmitsCancelledShows(t *testing.T) {
	store := altFixture()
	store.addShow(5, 1, 2, daysFromNow(3), "12:00:00", 1.0, model.ShowStatusCancelled)
	engine := NewEngine(store, store)

	alts, err := engine.FindAlternatives(context.Background(), 1, 2, nil)
	require.NoError(t, err)
	for _, alt := range alts {
		assert.NotEqual(t, uint64(5), alt.ShowID)
	}
}

func TestFindAlternativesCarriesVenueDetails(t *testing.T) {
	store := altFixture()
	engine := NewEngine(store, store)

	exclude := daysFromNow(2)
	alts, err := engine.FindAlternatives(context.Background(), 1, 8, &exclude)
	require.NoError(t, err)
	require.Len(t, alts, 2)

	riverside := alts[1]
	assert.Equal(t, "Interstellar", riverside.MovieTitle)
	assert.Equal(t, "Riverside Multiplex", riverside.TheaterName)
	assert.Equal(t, "Screen 3", riverside.HallName)
	assert.Equal(t, "21:00:00", riverside.StartTime)
	assert.Equal(t, 8, riverside.SeatCount)
	assert.Len(t, riverside.SeatIDs, 8)
}

func TestFindAlternativesUnknownMovie(t *testing.T) {
	store := altFixture()
	engine := NewEngine(store, store)

	_, err := engine.FindAlternatives(context.Background(), 42, 2, nil)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestFindAlternativesEmptyWhenNoShows(t *testing.T) {
	store := newMemStore()
	store.addMovie(1, "Dune", 10.00)
	engine := NewEngine(store, store)

	alts, err := engine.FindAlternatives(context.Background(), 1, 2, nil)
	require.NoError(t, err)
	assert.Empty(t, alts)
}
