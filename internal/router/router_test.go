package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mstepanov/cinema-booking/internal/booking"
	"github.com/mstepanov/cinema-booking/internal/handler"
	"github.com/mstepanov/cinema-booking/internal/model"
)

type fixedScreenings struct{ sc *model.Screening }

func (s fixedScreenings) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	return s.sc, nil
}

type fixedSeats struct{ seats []model.Seat }

func (s fixedSeats) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	return &s.seats[0], nil
}

func (s fixedSeats) ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	return s.seats, nil
}

type fixedBookings struct{ booked map[uint64]struct{} }

func (s fixedBookings) Create(ctx context.Context, b *model.Booking) error { return nil }
func (s fixedBookings) Exists(ctx context.Context, screeningID, seatID uint64) (bool, error) {
	return false, nil
}
func (s fixedBookings) BookedSeatIDs(ctx context.Context, screeningID uint64) (map[uint64]struct{}, error) {
	return s.booked, nil
}
func (s fixedBookings) GetForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	return nil, nil
}
func (s fixedBookings) Delete(ctx context.Context, bookingID uint64) error { return nil }

// markerCache stands in for the response cache: it tags and
// short-circuits every request it sees, so a route that reaches its
// real handler provably bypassed it.
func markerCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("X-Cached-Route", "1")
		return c.NoContent(http.StatusOK)
	}
}

func markerRate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("X-Limited-Route", "1")
		return next(c)
	}
}

func browseEcho(t *testing.T) *echo.Echo {
	t.Helper()
	svc := booking.NewService(
		fixedScreenings{sc: &model.Screening{ID: 5, HallID: 1, StartsAt: time.Now().Add(time.Hour)}},
		fixedSeats{seats: []model.Seat{{ID: 11, HallID: 1, Row: 1, Number: 1}}},
		fixedBookings{booked: map[uint64]struct{}{11: {}}},
	)
	e := echo.New()
	RegisterPublic(e, handler.NewBrowseHandler(nil, nil, svc), markerRate, markerCache)
	return e
}

func browseGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterPublic_SeatMapBypassesCache(t *testing.T) {
	e := browseEcho(t)

	rec := browseGet(e, "/v1/screenings/5/seats")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cached-Route"))
	// the real handler ran and reported the booked seat
	assert.Contains(t, rec.Body.String(), "\"booked\":true")
	// the rate limiter still covers the route
	assert.Equal(t, "1", rec.Header().Get("X-Limited-Route"))
}

func TestRegisterPublic_CatalogRoutesAreCached(t *testing.T) {
	e := browseEcho(t)

	for _, target := range []string{"/v1/movies", "/v1/movies/3", "/v1/screenings", "/v1/screenings/today"} {
		rec := browseGet(e, target)
		assert.Equal(t, "1", rec.Header().Get("X-Cached-Route"), target)
	}
}
