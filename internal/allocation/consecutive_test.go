package allocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

func TestFindConsecutiveSkipsBookedNumbers(t *testing.T) {
	// Row 1 holds seats numbered 1-10 (ids 1-10); 3 and 4 are booked.
	// A request for 3 seats must not return a run crossing the booked
	// numbers: {1,2} is too short and {2,3,4} is taken, so {5,6,7} wins.
	store := newFixture()
	store.bookSeat(1, 3)
	store.bookSeat(1, 4)
	engine := NewEngine(store, store)

	block, err := engine.FindConsecutiveSeats(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 6, 7}, block)
}

func TestFindConsecutivePrefersLowestRowAndSeat(t *testing.T) {
	store := newFixture()
	engine := NewEngine(store, store)

	block, err := engine.FindConsecutiveSeats(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4}, block)
}

func TestFindConsecutiveFallsThroughToNextRow(t *testing.T) {
	store := newFixture()
	// leave at most 2-seat runs in row 1
	for _, seat := range []uint64{1, 4, 7, 10} {
		store.bookSeat(1, seat)
	}
	engine := NewEngine(store, store)

	block, err := engine.FindConsecutiveSeats(context.Background(), 1, 3)
	require.NoError(t, err)
	// row 2 starts at seat id 11
	assert.Equal(t, []uint64{11, 12, 13}, block)
}

func TestFindConsecutiveRejectsGapsInLayout(t *testing.T) {
	// A hall row numbered 1,2,4,5: free throughout, but no 3-seat run
	// exists because number 3 is missing from the layout.
	store := newMemStore()
	store.addMovie(1, "Dune", 10.00)
	store.addTheater(1, "Galaxy Cinemas")
	store.addHall(1, 1, "Audi 2", 1)
	store.addSeat(1, 1, 1, 1)
	store.addSeat(2, 1, 1, 2)
	store.addSeat(3, 1, 1, 4)
	store.addSeat(4, 1, 1, 5)
	store.addShow(1, 1, 1, daysFromNow(1), "20:00:00", 1.0, model.ShowStatusActive)
	engine := NewEngine(store, store)

	block, err := engine.FindConsecutiveSeats(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Empty(t, block)

	pair, err := engine.FindConsecutiveSeats(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, pair)
}

func TestFindConsecutiveNoBlockIsNotAnError(t *testing.T) {
	store := newFixture()
	engine := NewEngine(store, store)

	block, err := engine.FindConsecutiveSeats(context.Background(), 1, 11)
	require.NoError(t, err)
	assert.Empty(t, block)
}

func TestFindConsecutiveValidation(t *testing.T) {
	store := newFixture()
	engine := NewEngine(store, store)

	_, err := engine.FindConsecutiveSeats(context.Background(), 1, 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = engine.FindConsecutiveSeats(context.Background(), 42, 2)
	assert.ErrorIs(t, err, ErrShowNotFound)
}
