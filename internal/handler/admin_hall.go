package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mstepanov/cinema-booking/internal/model"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

// maxGridDim bounds both hall dimensions. Grids larger than 20x20 are
// rejected at creation time.
const maxGridDim = 20

// HallAdminHandler serves hall management. Creating a hall also
// materializes its full seat grid.
type HallAdminHandler struct {
	Halls *repository.HallRepo
	Seats *repository.SeatRepo
}

func NewHallAdminHandler(h *repository.HallRepo, s *repository.SeatRepo) *HallAdminHandler {
	return &HallAdminHandler{Halls: h, Seats: s}
}

type hallReq struct {
	Name        string `json:"name"`
	SeatRows    uint32 `json:"seat_rows"`
	SeatsPerRow uint32 `json:"seats_per_row"`
}

type hallResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	SeatRows    uint32 `json:"seat_rows"`
	SeatsPerRow uint32 `json:"seats_per_row"`
	TotalSeats  uint32 `json:"total_seats"`
}

func toHallResp(h model.CinemaHall) hallResp {
	return hallResp{
		ID:          h.ID,
		Name:        h.Name,
		SeatRows:    h.SeatRows,
		SeatsPerRow: h.SeatsPerRow,
		TotalSeats:  h.TotalSeats(),
	}
}

// Create handles POST /v1/admin/halls. The seat layout is fixed at
// creation; there is no endpoint to reshape an existing hall.
func (h *HallAdminHandler) Create(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.SeatRows < 1 || req.SeatRows > maxGridDim || req.SeatsPerRow < 1 || req.SeatsPerRow > maxGridDim {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_rows and seats_per_row must be between 1 and 20"})
	}

	ctx := c.Request().Context()
	hall := &model.CinemaHall{
		Name:        req.Name,
		SeatRows:    req.SeatRows,
		SeatsPerRow: req.SeatsPerRow,
	}
	if err := h.Halls.Create(ctx, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}

	seats := make([]model.Seat, 0, hall.TotalSeats())
	for row := uint32(1); row <= req.SeatRows; row++ {
		for num := uint32(1); num <= req.SeatsPerRow; num++ {
			seats = append(seats, model.Seat{HallID: hall.ID, Row: row, Number: num})
		}
	}
	if err := h.Seats.CreateBulk(ctx, seats); err != nil {
		// seat insert failed, drop the half-created hall
		_ = h.Halls.Delete(ctx, hall.ID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seats failed"})
	}

	return c.JSON(http.StatusCreated, toHallResp(*hall))
}

// List handles GET /v1/admin/halls.
func (h *HallAdminHandler) List(c echo.Context) error {
	halls, err := h.Halls.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]hallResp, 0, len(halls))
	for _, hl := range halls {
		out = append(out, toHallResp(hl))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Delete handles DELETE /v1/admin/halls/:id. Seats, screenings and
// bookings in the hall are removed by the FK cascade.
func (h *HallAdminHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Halls.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hall failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
