package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
)

func TestParseSeatList(t *testing.T) {
	ids, err := parseSeatList("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)

	ids, err = parseSeatList(" 7 , 8 ")
	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 8}, ids)

	ids, err = parseSeatList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parseSeatList("1,x")
	assert.Error(t, err)

	_, err = parseSeatList("1,,2")
	assert.Error(t, err)
}

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteAllocationErrorValidation(t *testing.T) {
	c, rec := newTestContext(t)
	err := writeAllocationError(c, &allocation.ValidationError{Msg: "duplicate seat id 3 in request"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate seat id 3")
}

func TestWriteAllocationErrorRejection(t *testing.T) {
	c, rec := newTestContext(t)
	err := writeAllocationError(c, &allocation.Rejection{
		Reason:           allocation.ReasonSeatsUnavailable,
		Message:          "requested seats are not available",
		UnavailableSeats: []uint64{4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "seats_unavailable")
	assert.Contains(t, rec.Body.String(), "unavailable_seats")
}

func TestWriteAllocationErrorNotFound(t *testing.T) {
	c, rec := newTestContext(t)
	err := writeAllocationError(c, allocation.ErrShowNotFound)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteAllocationErrorTransient(t *testing.T) {
	c, rec := newTestContext(t)
	err := writeAllocationError(c, &allocation.TransientError{
		Op:  "commit bookings",
		Err: &allocation.SeatsTakenError{SeatIDs: []uint64{9}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWriteAllocationErrorAlreadyCancelled(t *testing.T) {
	c, rec := newTestContext(t)
	err := writeAllocationError(c, allocation.ErrAlreadyCancelled)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
