package allocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailabilityAllFree(t *testing.T) {
	store := newFixture()
	engine := NewEngine(store, store)

	ok, taken, err := engine.CheckAvailability(context.Background(), 1, []uint64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, taken)
}

func TestCheckAvailabilityReportsHeldSeats(t *testing.T) {
	store := newFixture()
	store.bookSeat(1, 2)
	store.bookSeat(1, 3)
	engine := NewEngine(store, store)

	ok, taken, err := engine.CheckAvailability(context.Background(), 1, []uint64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ElementsMatch(t, []uint64{2, 3}, taken)
}

func TestCheckAvailabilityIgnoresCancelledBookings(t *testing.T) {
	store := newFixture()
	engine := NewEngine(store, store)
	ctx := context.Background()

	booking, err := engine.BookSingle(ctx, 7, 1, 5)
	require.NoError(t, err)
	_, err = engine.Cancel(ctx, booking.ID)
	require.NoError(t, err)

	ok, taken, err := engine.CheckAvailability(ctx, 1, []uint64{5})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, taken)
}

func TestCheckAvailabilityRejectsEmptySeatList(t *testing.T) {
	store := newFixture()
	engine := NewEngine(store, store)

	_, _, err := engine.CheckAvailability(context.Background(), 1, nil)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
