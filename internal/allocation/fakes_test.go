package allocation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/prabhakarsharma-pythonaire/movie-ticket/internal/model"
)

// memStore is an in-memory Catalog + BookingStore used by the engine
// tests.  CreateAll performs the same mutex-guarded test-and-set the
// MySQL store performs transactionally, so concurrency tests exercise
// the real commit semantics.
type memStore struct {
	mu       sync.Mutex
	movies   map[uint64]model.Movie
	theaters map[uint64]model.Theater
	halls    map[uint64]model.Hall
	seats    map[uint64]model.Seat
	shows    map[uint64]model.Show
	bookings map[uint64]model.Booking
	refs     map[string]struct{}
	nextID   uint64
}

func newMemStore() *memStore {
	return &memStore{
		movies:   make(map[uint64]model.Movie),
		theaters: make(map[uint64]model.Theater),
		halls:    make(map[uint64]model.Hall),
		seats:    make(map[uint64]model.Seat),
		shows:    make(map[uint64]model.Show),
		bookings: make(map[uint64]model.Booking),
		refs:     make(map[string]struct{}),
	}
}

func (m *memStore) MovieByID(_ context.Context, id uint64) (*model.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	return &mv, nil
}

func (m *memStore) ShowByID(_ context.Context, id uint64) (*model.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shows[id]
	if !ok {
		return nil, ErrShowNotFound
	}
	return &s, nil
}

func (m *memStore) HallByID(_ context.Context, id uint64) (*model.Hall, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.halls[id]
	if !ok {
		return nil, ErrHallNotFound
	}
	return &h, nil
}

func (m *memStore) TheaterByID(_ context.Context, id uint64) (*model.Theater, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.theaters[id]
	if !ok {
		return nil, ErrTheaterNotFound
	}
	return &t, nil
}

func (m *memStore) SeatByID(_ context.Context, id uint64) (*model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.seats[id]
	if !ok {
		return nil, ErrSeatNotFound
	}
	return &s, nil
}

func (m *memStore) SeatsByHall(_ context.Context, hallID uint64) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, s := range m.seats {
		if s.HallID == hallID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RowNumber != out[j].RowNumber {
			return out[i].RowNumber < out[j].RowNumber
		}
		return out[i].SeatNumber < out[j].SeatNumber
	})
	return out, nil
}

func (m *memStore) ActiveShowsByMovie(_ context.Context, movieID uint64, from time.Time) ([]model.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Show
	for _, s := range m.shows {
		if s.MovieID == movieID && s.Status == model.ShowStatusActive && !s.ShowDate.Before(from) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ShowDate.Equal(out[j].ShowDate) {
			return out[i].ShowDate.Before(out[j].ShowDate)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *memStore) ConfirmedSeats(_ context.Context, showID uint64, seatIDs []uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[uint64]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		want[id] = struct{}{}
	}
	var taken []uint64
	for _, b := range m.bookings {
		if b.ShowID != showID || b.Status != model.BookingStatusConfirmed {
			continue
		}
		if _, ok := want[b.SeatID]; ok {
			taken = append(taken, b.SeatID)
		}
	}
	sort.Slice(taken, func(i, j int) bool { return taken[i] < taken[j] })
	return taken, nil
}

func (m *memStore) ConfirmedSeatSet(_ context.Context, showID uint64) (map[uint64]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uint64]struct{})
	for _, b := range m.bookings {
		if b.ShowID == showID && b.Status == model.BookingStatusConfirmed {
			out[b.SeatID] = struct{}{}
		}
	}
	return out, nil
}

func (m *memStore) ReferenceExists(_ context.Context, reference string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.refs[reference]
	return ok, nil
}

func (m *memStore) CreateAll(_ context.Context, bookings []*model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var lost []uint64
	for _, nb := range bookings {
		for _, b := range m.bookings {
			if b.ShowID == nb.ShowID && b.SeatID == nb.SeatID && b.Status == model.BookingStatusConfirmed {
				lost = append(lost, nb.SeatID)
				break
			}
		}
	}
	if len(lost) > 0 {
		return &SeatsTakenError{SeatIDs: lost}
	}
	for _, nb := range bookings {
		m.nextID++
		nb.ID = m.nextID
		m.bookings[nb.ID] = *nb
		m.refs[nb.Reference] = struct{}{}
	}
	return nil
}

func (m *memStore) BookingByID(_ context.Context, id uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (m *memStore) Cancel(_ context.Context, id uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status == model.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	b.Status = model.BookingStatusCancelled
	b.UpdatedAt = time.Now().UTC()
	m.bookings[id] = b
	return &b, nil
}

// confirmedCount is a test helper counting confirmed bookings for a
// (show, seat) pair.
func (m *memStore) confirmedCount(showID, seatID uint64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.bookings {
		if b.ShowID == showID && b.SeatID == seatID && b.Status == model.BookingStatusConfirmed {
			n++
		}
	}
	return n
}

// --- fixture helpers ---

func (m *memStore) addMovie(id uint64, title string, basePrice float64) {
	m.movies[id] = model.Movie{ID: id, Title: title, BasePrice: basePrice, DurationMinutes: 120}
}

func (m *memStore) addTheater(id uint64, name string) {
	m.theaters[id] = model.Theater{ID: id, Name: name, Address: "1 Main St", City: "Pune"}
}

func (m *memStore) addHall(id, theaterID uint64, name string, totalRows uint32) {
	m.halls[id] = model.Hall{ID: id, TheaterID: theaterID, Name: name, TotalRows: totalRows}
}

func (m *memStore) addSeat(id, hallID uint64, row, number uint32) {
	m.seats[id] = model.Seat{ID: id, HallID: hallID, RowNumber: row, SeatNumber: number, SeatType: model.SeatTypeStandard}
}

func (m *memStore) addShow(id, movieID, hallID uint64, date time.Time, start string, multiplier float64, status string) {
	m.shows[id] = model.Show{
		ID: id, MovieID: movieID, HallID: hallID,
		ShowDate: date, StartTime: start, EndTime: "23:59:00",
		PriceMultiplier: multiplier, Status: status,
	}
}

// bookSeat inserts a confirmed booking directly, bypassing the engine.
func (m *memStore) bookSeat(showID, seatID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.bookings[m.nextID] = model.Booking{
		ID: m.nextID, UserID: 99, ShowID: showID, SeatID: seatID,
		Reference: "SEED" + time.Now().Format("150405.000000000"),
		Status:    model.BookingStatusConfirmed,
	}
}

func daysFromNow(n int) time.Time {
	return truncateToDate(time.Now().UTC()).AddDate(0, 0, n)
}

// newFixture builds a store with one movie (base price 10.00), one
// theater, one 2x10 hall (seat ids 1..20: row 1 holds 1..10, row 2
// holds 11..20) and one active show tomorrow with multiplier 1.5.
func newFixture() *memStore {
	m := newMemStore()
	m.addMovie(1, "Interstellar", 10.00)
	m.addTheater(1, "Galaxy Cinemas")
	m.addHall(1, 1, "Audi 1", 2)
	for row := uint32(1); row <= 2; row++ {
		for num := uint32(1); num <= 10; num++ {
			m.addSeat(uint64((row-1)*10+num), 1, row, num)
		}
	}
	m.addShow(1, 1, 1, daysFromNow(1), "18:00:00", 1.5, model.ShowStatusActive)
	return m
}
