package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
)

// writeAllocationError maps allocation errors onto HTTP responses:
//
//	ValidationError            -> 400 with the message
//	Rejection                  -> 409 with reason, unavailable seats and alternatives
//	not-found sentinels        -> 404
//	ErrAlreadyCancelled        -> 409
//	TransientError             -> 503, the client may retry
//
// Anything else is an internal error.
func writeAllocationError(c echo.Context, err error) error {
	var verr *allocation.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Msg})
	}

	var rej *allocation.Rejection
	if errors.As(err, &rej) {
		body := echo.Map{
			"error":   rej.Message,
			"reason":  rej.Reason,
			"success": false,
		}
		if len(rej.UnavailableSeats) > 0 {
			body["unavailable_seats"] = rej.UnavailableSeats
		}
		if len(rej.Alternatives) > 0 {
			body["alternatives"] = rej.Alternatives
		}
		return c.JSON(http.StatusConflict, body)
	}

	switch {
	case errors.Is(err, allocation.ErrMovieNotFound),
		errors.Is(err, allocation.ErrShowNotFound),
		errors.Is(err, allocation.ErrHallNotFound),
		errors.Is(err, allocation.ErrTheaterNotFound),
		errors.Is(err, allocation.ErrSeatNotFound),
		errors.Is(err, allocation.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, allocation.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	}

	var transient *allocation.TransientError
	if errors.As(err, &transient) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "booking could not be completed, please retry",
		})
	}

	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
