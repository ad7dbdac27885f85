package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/repository"
)

// CatalogHandler manages movies, theaters, halls, seats and shows.
// Creating a hall provisions its full seat layout in one bulk insert;
// the layout is immutable afterwards since bookings reference seats by
// id.
type CatalogHandler struct {
	Catalog  *repository.Catalog
	Bookings *repository.BookingRepo
}

func NewCatalogHandler(catalog *repository.Catalog, bookings *repository.BookingRepo) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Bookings: bookings}
}

// ----- DTOs -----

type createMovieReq struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	DurationMinutes uint32  `json:"duration_minutes"`
	Genre           *string `json:"genre"`
	Language        *string `json:"language"`
	BasePrice       float64 `json:"base_price"`
}

type createTheaterReq struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         *string `json:"state"`
	ContactNumber *string `json:"contact_number"`
}

type createHallReq struct {
	TheaterID   uint64 `json:"theater_id"`
	Name        string `json:"name"`
	Rows        uint32 `json:"rows"`
	SeatsPerRow uint32 `json:"seats_per_row"`
	// Rows counted from the back that get the premium seat type.
	PremiumRows uint32 `json:"premium_rows"`
}

type createShowReq struct {
	MovieID         uint64  `json:"movie_id"`
	HallID          uint64  `json:"hall_id"`
	ShowDate        string  `json:"show_date"`  // YYYY-MM-DD
	StartTime       string  `json:"start_time"` // HH:MM:SS
	EndTime         string  `json:"end_time"`   // HH:MM:SS
	PriceMultiplier float64 `json:"price_multiplier"`
}

// CreateMovie registers a new movie.
func (h *CatalogHandler) CreateMovie(c echo.Context) error {
	var req createMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.BasePrice <= 0 || req.DurationMinutes == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, duration_minutes and a positive base_price are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := &model.Movie{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genre:           req.Genre,
		Language:        req.Language,
		BasePrice:       req.BasePrice,
	}
	if err := h.Catalog.Movies.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMovies returns all movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Catalog.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list movies failed"})
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie returns one movie.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Catalog.Movies.GetByID(ctx, id)
	if err != nil {
		return writeAllocationError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// CreateTheater registers a new theater.
func (h *CatalogHandler) CreateTheater(c echo.Context) error {
	var req createTheaterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Address == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, address and city are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.Theater{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ContactNumber: req.ContactNumber,
	}
	if err := h.Catalog.Theaters.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create theater failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTheaters returns theaters, optionally filtered by ?city=.
func (h *CatalogHandler) ListTheaters(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theaters, err := h.Catalog.Theaters.ListByCity(ctx, c.QueryParam("city"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list theaters failed"})
	}
	return c.JSON(http.StatusOK, theaters)
}

// CreateHall creates a hall and provisions its seat layout.  Seats are
// numbered 1..seats_per_row within each row; the last premium_rows rows
// get the premium seat type and the first and last seat of every row
// are flagged as aisle seats.
func (h *CatalogHandler) CreateHall(c echo.Context) error {
	var req createHallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TheaterID == 0 || req.Name == "" || req.Rows == 0 || req.SeatsPerRow == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "theater_id, name, rows and seats_per_row are required"})
	}
	if req.PremiumRows > req.Rows {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "premium_rows exceeds rows"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Catalog.Theaters.GetByID(ctx, req.TheaterID); err != nil {
		return writeAllocationError(c, err)
	}

	hall := &model.Hall{TheaterID: req.TheaterID, Name: req.Name, TotalRows: req.Rows}
	if err := h.Catalog.Halls.Create(ctx, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}

	seats := make([]model.Seat, 0, int(req.Rows)*int(req.SeatsPerRow))
	firstPremium := req.Rows - req.PremiumRows + 1
	for row := uint32(1); row <= req.Rows; row++ {
		seatType := model.SeatTypeStandard
		if req.PremiumRows > 0 && row >= firstPremium {
			seatType = model.SeatTypePremium
		}
		for num := uint32(1); num <= req.SeatsPerRow; num++ {
			seats = append(seats, model.Seat{
				HallID:     hall.ID,
				RowNumber:  row,
				SeatNumber: num,
				SeatType:   seatType,
				IsAisle:    num == 1 || num == req.SeatsPerRow,
			})
		}
	}
	if err := h.Catalog.Seats.CreateBulk(ctx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "provision seats failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"hall":        hall,
		"total_seats": len(seats),
	})
}

// GetHall returns one hall and its seat count.
func (h *CatalogHandler) GetHall(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall, err := h.Catalog.Halls.GetByID(ctx, id)
	if err != nil {
		return writeAllocationError(c, err)
	}
	total, err := h.Catalog.Seats.CountByHall(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hall": hall, "total_seats": total})
}

// ListHallSeats returns a hall's full seat layout.
func (h *CatalogHandler) ListHallSeats(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Catalog.Halls.GetByID(ctx, id); err != nil {
		return writeAllocationError(c, err)
	}
	seats, err := h.Catalog.Seats.GetByHall(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seats failed"})
	}
	return c.JSON(http.StatusOK, seats)
}

// CreateShow schedules a movie in a hall.
func (h *CatalogHandler) CreateShow(c echo.Context) error {
	var req createShowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and hall_id are required"})
	}
	showDate, err := time.ParseInLocation("2006-01-02", req.ShowDate, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show_date, want YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04:05", req.StartTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, want HH:MM:SS"})
	}
	if _, err := time.Parse("15:04:05", req.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, want HH:MM:SS"})
	}
	if req.PriceMultiplier <= 0 {
		req.PriceMultiplier = 1.0
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Catalog.Movies.GetByID(ctx, req.MovieID); err != nil {
		return writeAllocationError(c, err)
	}
	if _, err := h.Catalog.Halls.GetByID(ctx, req.HallID); err != nil {
		return writeAllocationError(c, err)
	}

	show := &model.Show{
		MovieID:         req.MovieID,
		HallID:          req.HallID,
		ShowDate:        showDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		PriceMultiplier: req.PriceMultiplier,
		Status:          model.ShowStatusActive,
	}
	if err := h.Catalog.Shows.Create(ctx, show); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create show failed"})
	}
	return c.JSON(http.StatusCreated, show)
}

// CancelShow marks a show cancelled.  Cancelled shows disappear from
// availability and alternative suggestions; existing bookings stay on
// record and can still be cancelled individually by their owners.
func (h *CatalogHandler) CancelShow(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show, err := h.Catalog.Shows.GetByID(ctx, id)
	if err != nil {
		return writeAllocationError(c, err)
	}
	if show.Status == model.ShowStatusCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "show is already cancelled"})
	}
	if err := h.Catalog.Shows.UpdateStatus(ctx, id, model.ShowStatusCancelled); err != nil {
		return writeAllocationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"show_id": id, "status": model.ShowStatusCancelled})
}

// ListShowsByMovie returns all shows of a movie in chronological order.
func (h *CatalogHandler) ListShowsByMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Catalog.Movies.GetByID(ctx, id); err != nil {
		return writeAllocationError(c, err)
	}
	shows, err := h.Catalog.Shows.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shows failed"})
	}
	return c.JSON(http.StatusOK, shows)
}

// showSeat is one seat in a show's seat map with its availability.
type showSeat struct {
	SeatID     uint64 `json:"seat_id"`
	RowNumber  uint32 `json:"row_number"`
	SeatNumber uint32 `json:"seat_number"`
	SeatType   string `json:"seat_type"`
	IsAisle    bool   `json:"is_aisle"`
	Available  bool   `json:"available"`
}

// GetShowSeatMap returns every seat of a show's hall with per-seat
// availability derived from confirmed bookings.
func (h *CatalogHandler) GetShowSeatMap(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show, err := h.Catalog.Shows.GetByID(ctx, id)
	if err != nil {
		return writeAllocationError(c, err)
	}
	seats, err := h.Catalog.Seats.GetByHall(ctx, show.HallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seats failed"})
	}
	taken, err := h.Bookings.ConfirmedSeatSet(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}

	out := make([]showSeat, 0, len(seats))
	free := 0
	for _, s := range seats {
		_, booked := taken[s.ID]
		if !booked {
			free++
		}
		out = append(out, showSeat{
			SeatID:     s.ID,
			RowNumber:  s.RowNumber,
			SeatNumber: s.SeatNumber,
			SeatType:   s.SeatType,
			IsAisle:    s.IsAisle,
			Available:  !booked,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_id":         id,
		"total_seats":     len(out),
		"available_seats": free,
		"seats":           out,
	})
}
