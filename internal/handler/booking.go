package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/allocation"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/metrics"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/middleware"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/queue"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/repository"
)

// BookingHandler exposes the seat allocation engine over HTTP.  All
// endpoints require authentication; the booking user is always the
// token's subject.
type BookingHandler struct {
	Engine   *allocation.Engine
	Bookings *repository.BookingRepo
	Catalog  *repository.Catalog
}

func NewBookingHandler(engine *allocation.Engine, bookings *repository.BookingRepo, catalog *repository.Catalog) *BookingHandler {
	return &BookingHandler{Engine: engine, Bookings: bookings, Catalog: catalog}
}

// ----- DTOs -----

type bookSingleReq struct {
	ShowID uint64 `json:"show_id"`
	SeatID uint64 `json:"seat_id"`
}
type bookGroupReq struct {
	ShowID     uint64   `json:"show_id"`
	SeatIDs    []uint64 `json:"seat_ids"`
	BestEffort bool     `json:"best_effort"`
}
type bookConsecutiveReq struct {
	ShowID uint64 `json:"show_id"`
	Count  int    `json:"count"`
}

type bookingPart struct {
	ID          uint64    `json:"id"`
	ShowID      uint64    `json:"show_id"`
	SeatID      uint64    `json:"seat_id"`
	Reference   string    `json:"reference"`
	AmountPaid  float64   `json:"amount_paid"`
	Status      string    `json:"status"`
	BookingDate time.Time `json:"booking_date"`
}

type bookingResp struct {
	Success  bool          `json:"success"`
	Total    float64       `json:"total_amount"`
	Bookings []bookingPart `json:"bookings"`
}

func toBookingParts(bookings []*model.Booking) ([]bookingPart, float64) {
	parts := make([]bookingPart, 0, len(bookings))
	total := 0.0
	for _, b := range bookings {
		parts = append(parts, bookingPart{
			ID:          b.ID,
			ShowID:      b.ShowID,
			SeatID:      b.SeatID,
			Reference:   b.Reference,
			AmountPaid:  b.AmountPaid,
			Status:      b.Status,
			BookingDate: b.BookingDate,
		})
		total += b.AmountPaid
	}
	return parts, total
}

// BookSingle books one exact seat.
func (h *BookingHandler) BookSingle(c echo.Context) error {
	var req bookSingleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	booking, err := h.Engine.BookSingle(ctx, userID, req.ShowID, req.SeatID)
	if err != nil {
		countRejection(err)
		return writeAllocationError(c, err)
	}
	metrics.BookingsConfirmed.WithLabelValues(metrics.ModeSingle).Inc()
	h.publishConfirmed(userID, []*model.Booking{booking})

	parts, total := toBookingParts([]*model.Booking{booking})
	return c.JSON(http.StatusCreated, bookingResp{Success: true, Total: total, Bookings: parts})
}

// BookGroup books a set of exact seats atomically.  With best_effort
// set, a rejection carries alternative shows that can seat the group
// together.
func (h *BookingHandler) BookGroup(c echo.Context) error {
	var req bookGroupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bookings, err := h.Engine.BookGroup(ctx, userID, req.ShowID, req.SeatIDs, req.BestEffort)
	if err != nil {
		countRejection(err)
		return writeAllocationError(c, err)
	}
	metrics.BookingsConfirmed.WithLabelValues(metrics.ModeGroup).Add(float64(len(bookings)))
	h.publishConfirmed(userID, bookings)

	parts, total := toBookingParts(bookings)
	return c.JSON(http.StatusCreated, bookingResp{Success: true, Total: total, Bookings: parts})
}

// BookConsecutive finds and books a block of adjacent seats.
func (h *BookingHandler) BookConsecutive(c echo.Context) error {
	var req bookConsecutiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bookings, err := h.Engine.BookConsecutive(ctx, userID, req.ShowID, req.Count)
	if err != nil {
		countRejection(err)
		return writeAllocationError(c, err)
	}
	metrics.BookingsConfirmed.WithLabelValues(metrics.ModeConsecutive).Add(float64(len(bookings)))
	h.publishConfirmed(userID, bookings)

	parts, total := toBookingParts(bookings)
	return c.JSON(http.StatusCreated, bookingResp{Success: true, Total: total, Bookings: parts})
}

// Cancel cancels a booking owned by the caller and frees its seat.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeAllocationError(c, err)
	}
	if existing.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}

	cancelled, err := h.Engine.Cancel(ctx, id)
	if err != nil {
		return writeAllocationError(c, err)
	}
	metrics.BookingsCancelled.Inc()
	go func(b model.Booking) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue.PublishBookingCancelled(pubCtx, queue.BookingCancelledEvent{
			BookingID:   b.ID,
			UserID:      b.UserID,
			ShowID:      b.ShowID,
			SeatID:      b.SeatID,
			Reference:   b.Reference,
			AmountPaid:  b.AmountPaid,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}(*cancelled)

	parts, _ := toBookingParts([]*model.Booking{cancelled})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "booking": parts[0]})
}

// Get returns one booking owned by the caller.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeAllocationError(c, err)
	}
	if b.UserID != middleware.UserID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}
	parts, _ := toBookingParts([]*model.Booking{b})
	return c.JSON(http.StatusOK, parts[0])
}

// GetByReference resolves a booking by its reference string.
func (h *BookingHandler) GetByReference(c echo.Context) error {
	ref := c.Param("reference")
	if ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reference"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByReference(ctx, ref)
	if err != nil {
		return writeAllocationError(c, err)
	}
	if b.UserID != middleware.UserID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}
	parts, _ := toBookingParts([]*model.Booking{b})
	return c.JSON(http.StatusOK, parts[0])
}

// ListMine returns the caller's bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		return writeAllocationError(c, err)
	}
	parts := make([]bookingPart, 0, len(bookings))
	for i := range bookings {
		p, _ := toBookingParts([]*model.Booking{&bookings[i]})
		parts = append(parts, p[0])
	}
	return c.JSON(http.StatusOK, parts)
}

// ListByShow returns every booking of a show ordered by seat, so a
// theater operator can reconcile the hall against the ledger.
func (h *BookingHandler) ListByShow(c echo.Context) error {
	showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Catalog.ShowByID(ctx, showID); err != nil {
		return writeAllocationError(c, err)
	}
	bookings, err := h.Bookings.ListByShow(ctx, showID)
	if err != nil {
		return writeAllocationError(c, err)
	}
	parts := make([]bookingPart, 0, len(bookings))
	for i := range bookings {
		p, _ := toBookingParts([]*model.Booking{&bookings[i]})
		parts = append(parts, p[0])
	}
	return c.JSON(http.StatusOK, echo.Map{"show_id": showID, "bookings": parts})
}

// CheckAvailability reports whether the given seats are all free for a
// show.  Seat ids come from the comma-separated "seats" query param.
func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	seatIDs, err := parseSeatList(c.QueryParam("seats"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seats param"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	available, taken, err := h.Engine.CheckAvailability(ctx, showID, seatIDs)
	if err != nil {
		return writeAllocationError(c, err)
	}
	resp := echo.Map{"available": available}
	if len(taken) > 0 {
		resp["unavailable_seats"] = taken
	}
	return c.JSON(http.StatusOK, resp)
}

// FindConsecutive returns the first block of count adjacent free seats
// for a show, or an empty list when none exists.
func (h *BookingHandler) FindConsecutive(c echo.Context) error {
	showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid count param"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	block, err := h.Engine.FindConsecutiveSeats(ctx, showID, count)
	if err != nil {
		return writeAllocationError(c, err)
	}
	if len(block) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"found": false, "seat_ids": []uint64{}})
	}
	return c.JSON(http.StatusOK, echo.Map{"found": true, "seat_ids": block})
}

// FindAlternatives suggests other shows of a movie that can seat count
// people together.  An optional exclude_date (YYYY-MM-DD) skips shows
// on the date the caller already tried.
func (h *BookingHandler) FindAlternatives(c echo.Context) error {
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || movieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid count param"})
	}
	var excludeDate *time.Time
	if raw := c.QueryParam("exclude_date"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude_date, want YYYY-MM-DD"})
		}
		excludeDate = &d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	alts, err := h.Engine.FindAlternatives(ctx, movieID, count, excludeDate)
	if err != nil {
		return writeAllocationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"alternatives": alts})
}

// publishConfirmed emits a booking.confirmed event for a committed
// booking set.  It runs in the background and never affects the
// response; the booking already committed.
func (h *BookingHandler) publishConfirmed(userID uint64, bookings []*model.Booking) {
	if len(bookings) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		ev := queue.BookingConfirmedEvent{
			UserID:      userID,
			ShowID:      bookings[0].ShowID,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		}
		for _, b := range bookings {
			ev.References = append(ev.References, b.Reference)
			ev.SeatIDs = append(ev.SeatIDs, b.SeatID)
			ev.TotalAmount += b.AmountPaid
		}
		// Enrich with venue details; the event is best effort, so a
		// lookup failure just leaves fields empty.
		if show, err := h.Catalog.ShowByID(ctx, ev.ShowID); err == nil {
			ev.ShowDate = show.ShowDate.Format("2006-01-02")
			ev.StartTime = show.StartTime
			if movie, err := h.Catalog.MovieByID(ctx, show.MovieID); err == nil {
				ev.MovieTitle = movie.Title
			}
			if hall, err := h.Catalog.HallByID(ctx, show.HallID); err == nil {
				ev.HallName = hall.Name
				if theater, err := h.Catalog.TheaterByID(ctx, hall.TheaterID); err == nil {
					ev.TheaterName = theater.Name
				}
			}
		}
		_ = queue.PublishBookingConfirmed(ctx, ev)
	}()
}

func countRejection(err error) {
	var rej *allocation.Rejection
	if errors.As(err, &rej) {
		metrics.BookingsRejected.WithLabelValues(rej.Reason).Inc()
		return
	}
	var transient *allocation.TransientError
	if errors.As(err, &transient) {
		metrics.CommitConflicts.Inc()
	}
}

// parseSeatList splits a comma-separated list of seat ids.
func parseSeatList(raw string) ([]uint64, error) {
	if raw == "" {
		return nil, nil
	}
	fields := strings.Split(raw, ",")
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
