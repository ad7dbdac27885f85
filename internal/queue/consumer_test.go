package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatConfirmed(t *testing.T) {
	line := formatConfirmed(BookingConfirmedEvent{
		UserID:      7,
		ShowID:      3,
		MovieTitle:  "Interstellar",
		TheaterName: "Galaxy Cinemas",
		HallName:    "Audi 1",
		ShowDate:    "2026-09-01",
		StartTime:   "18:00:00",
		References:  []string{"BK1A", "BK2B"},
		SeatIDs:     []uint64{5, 6},
		TotalAmount: 30,
		ConfirmedAt: "2026-08-31T10:00:00Z",
	})
	assert.Contains(t, line, "Booking confirmed")
	assert.Contains(t, line, "user_id=7")
	assert.Contains(t, line, "show_id=3")
	assert.Contains(t, line, `movie="Interstellar"`)
	assert.Contains(t, line, "total=30.00")
	assert.Contains(t, line, "seats=[5,6]")
	assert.Contains(t, line, "refs=[BK1A,BK2B]")
	assert.Equal(t, byte('\n'), line[len(line)-1])
}

func TestFormatCancelled(t *testing.T) {
	line := formatCancelled(BookingCancelledEvent{
		BookingID:   12,
		UserID:      7,
		ShowID:      3,
		SeatID:      5,
		Reference:   "BK1A",
		AmountPaid:  15,
		CancelledAt: "2026-08-31T11:00:00Z",
	})
	assert.Contains(t, line, "Booking cancelled")
	assert.Contains(t, line, "booking_id=12")
	assert.Contains(t, line, "seat_id=5")
	assert.Contains(t, line, "amount=15.00")
	assert.Contains(t, line, "ref=BK1A")
	assert.Equal(t, byte('\n'), line[len(line)-1])
}

func TestHandleMessageRoutesByQueue(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	confirmed, err := json.Marshal(BookingConfirmedEvent{UserID: 1, ShowID: 2, References: []string{"BKX"}})
	require.NoError(t, err)
	require.NoError(t, handleMessage(ConfirmedQueueName, confirmed))

	cancelled, err := json.Marshal(BookingCancelledEvent{BookingID: 9, Reference: "BKY"})
	require.NoError(t, err)
	require.NoError(t, handleMessage(CancelledQueueName, cancelled))

	data, err := os.ReadFile(filepath.Join("logs", "booking.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Booking confirmed")
	assert.Contains(t, string(data), "Booking cancelled")
	assert.Contains(t, string(data), "ref=BKY")
}

func TestHandleMessageRejectsBadInput(t *testing.T) {
	assert.Error(t, handleMessage(ConfirmedQueueName, []byte("{not json")))
	assert.Error(t, handleMessage(CancelledQueueName, []byte("{not json")))
	assert.Error(t, handleMessage("booking.unknown", []byte("{}")))
}
