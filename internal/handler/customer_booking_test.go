package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstepanov/cinema-booking/internal/booking"
	"github.com/mstepanov/cinema-booking/internal/model"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

// Stub stores drive the real booking.Service through the handler.

type stubScreenings struct {
	sc  *model.Screening
	err error
}

func (s *stubScreenings) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	return s.sc, s.err
}

type stubSeats struct {
	seat *model.Seat
	err  error
}

func (s *stubSeats) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	return s.seat, s.err
}

func (s *stubSeats) ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	return nil, nil
}

type stubBookings struct {
	exists    bool
	createErr error
	forUser   *model.Booking
	getErr    error
	deleted   []uint64
}

func (s *stubBookings) Create(ctx context.Context, b *model.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	b.ID = 99
	b.BookedAt = time.Now().UTC()
	return nil
}

func (s *stubBookings) Exists(ctx context.Context, screeningID, seatID uint64) (bool, error) {
	return s.exists, nil
}

func (s *stubBookings) BookedSeatIDs(ctx context.Context, screeningID uint64) (map[uint64]struct{}, error) {
	return map[uint64]struct{}{}, nil
}

func (s *stubBookings) GetForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	return s.forUser, s.getErr
}

func (s *stubBookings) Delete(ctx context.Context, bookingID uint64) error {
	s.deleted = append(s.deleted, bookingID)
	return nil
}

var handlerNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func bookableScreening() *model.Screening {
	return &model.Screening{ID: 7, MovieID: 3, HallID: 2, StartsAt: handlerNow.Add(time.Hour), EndsAt: handlerNow.Add(3 * time.Hour)}
}

func newBookingHandler(scs *stubScreenings, sts *stubSeats, bks *stubBookings) *BookingHandler {
	svc := booking.NewService(scs, sts, bks, booking.WithClock(func() time.Time { return handlerNow }))
	return &BookingHandler{Svc: svc}
}

func postBooking(t *testing.T, h *BookingHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(42))
	require.NoError(t, h.Create(c))
	return rec
}

func deleteBooking(t *testing.T, h *BookingHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("user_id", float64(42))
	require.NoError(t, h.Cancel(c))
	return rec
}

func TestBookingCreate_Success(t *testing.T) {
	h := newBookingHandler(
		&stubScreenings{sc: bookableScreening()},
		&stubSeats{seat: &model.Seat{ID: 15, HallID: 2, Row: 2, Number: 2}},
		&stubBookings{},
	)
	rec := postBooking(t, h, `{"screening_id":7,"seat_id":15}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":99`)
}

func TestBookingCreate_MissingFields(t *testing.T) {
	h := newBookingHandler(&stubScreenings{}, &stubSeats{}, &stubBookings{})
	rec := postBooking(t, h, `{"screening_id":7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingCreate_ScreeningMissing(t *testing.T) {
	h := newBookingHandler(
		&stubScreenings{err: repository.ErrScreeningNotFound},
		&stubSeats{},
		&stubBookings{},
	)
	rec := postBooking(t, h, `{"screening_id":7,"seat_id":15}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingCreate_ScreeningStarted(t *testing.T) {
	sc := bookableScreening()
	sc.StartsAt = handlerNow.Add(-time.Minute)
	h := newBookingHandler(&stubScreenings{sc: sc}, &stubSeats{}, &stubBookings{})

	rec := postBooking(t, h, `{"screening_id":7,"seat_id":15}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already started")
}

func TestBookingCreate_WrongHallSeat(t *testing.T) {
	h := newBookingHandler(
		&stubScreenings{sc: bookableScreening()},
		&stubSeats{seat: &model.Seat{ID: 15, HallID: 8, Row: 1, Number: 1}},
		&stubBookings{},
	)
	rec := postBooking(t, h, `{"screening_id":7,"seat_id":15}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingCreate_SeatTaken(t *testing.T) {
	h := newBookingHandler(
		&stubScreenings{sc: bookableScreening()},
		&stubSeats{seat: &model.Seat{ID: 15, HallID: 2, Row: 2, Number: 2}},
		&stubBookings{exists: true},
	)
	rec := postBooking(t, h, `{"screening_id":7,"seat_id":15}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already booked")
}

func TestBookingCancel_Success(t *testing.T) {
	bks := &stubBookings{forUser: &model.Booking{ID: 5, UserID: 42, ScreeningID: 7, SeatID: 15}}
	h := newBookingHandler(&stubScreenings{sc: bookableScreening()}, &stubSeats{}, bks)

	rec := deleteBooking(t, h, "5")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint64{5}, bks.deleted)
}

func TestBookingCancel_NotFound(t *testing.T) {
	h := newBookingHandler(
		&stubScreenings{},
		&stubSeats{},
		&stubBookings{getErr: repository.ErrBookingNotFound},
	)
	rec := deleteBooking(t, h, "5")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingCancel_AfterStart(t *testing.T) {
	sc := bookableScreening()
	sc.StartsAt = handlerNow.Add(-time.Hour)
	bks := &stubBookings{forUser: &model.Booking{ID: 5, UserID: 42, ScreeningID: 7, SeatID: 15}}
	h := newBookingHandler(&stubScreenings{sc: sc}, &stubSeats{}, bks)

	rec := deleteBooking(t, h, "5")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, bks.deleted)
}
