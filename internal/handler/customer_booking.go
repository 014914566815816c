package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mstepanov/cinema-booking/internal/booking"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

// myBookingsPageSize is the page length of the booking history listing.
const myBookingsPageSize = 10

// BookingHandler serves the customer booking endpoints. All routes run
// behind JWTAuth with the CUSTOMER role.
type BookingHandler struct {
	Svc      *booking.Service
	Bookings *repository.BookingRepo
}

func NewBookingHandler(svc *booking.Service, b *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: b}
}

type createBookingReq struct {
	ScreeningID uint64 `json:"screening_id"`
	SeatID      uint64 `json:"seat_id"`
}

type bookingResp struct {
	ID          uint64 `json:"id"`
	ScreeningID uint64 `json:"screening_id"`
	SeatID      uint64 `json:"seat_id"`
	BookedAt    string `json:"booked_at"`
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil || req.ScreeningID == 0 || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screening_id and seat_id required"})
	}

	b, err := h.Svc.Book(c.Request().Context(), uid, req.ScreeningID, req.SeatID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrScreeningNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		case errors.Is(err, booking.ErrInvalidSeat):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat does not belong to this screening"})
		case errors.Is(err, booking.ErrScreeningStarted):
			return c.JSON(http.StatusConflict, echo.Map{"error": "screening already started"})
		case errors.Is(err, repository.ErrSeatTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	return c.JSON(http.StatusCreated, bookingResp{
		ID:          b.ID,
		ScreeningID: b.ScreeningID,
		SeatID:      b.SeatID,
		BookedAt:    b.BookedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Mine handles GET /v1/my-bookings, newest first.
func (h *BookingHandler) Mine(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page := queryPage(c)

	items, total, err := h.Bookings.ListByUser(c.Request().Context(), uid, page, myBookingsPageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": myBookingsPageSize,
	})
}

// Cancel handles DELETE /v1/bookings/:id. A booking that belongs to a
// different user is reported as not found rather than forbidden, so
// the endpoint leaks nothing about other users' bookings.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.Svc.Cancel(c.Request().Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, booking.ErrScreeningStarted):
			return c.JSON(http.StatusConflict, echo.Map{"error": "screening already started"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
