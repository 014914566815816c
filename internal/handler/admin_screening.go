package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mstepanov/cinema-booking/internal/model"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

// ScreeningAdminHandler serves screening management.
type ScreeningAdminHandler struct {
	Screenings *repository.ScreeningRepo
	Movies     *repository.MovieRepo
	Halls      *repository.HallRepo
}

func NewScreeningAdminHandler(s *repository.ScreeningRepo, m *repository.MovieRepo, h *repository.HallRepo) *ScreeningAdminHandler {
	return &ScreeningAdminHandler{Screenings: s, Movies: m, Halls: h}
}

type screeningResp struct {
	ID         uint64    `json:"id"`
	MovieID    uint64    `json:"movie_id"`
	HallID     uint64    `json:"hall_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	PriceCents uint32    `json:"price_cents"`
}

type screeningReq struct {
	MovieID    uint64    `json:"movie_id"`
	HallID     uint64    `json:"hall_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	PriceCents uint32    `json:"price_cents"`
}

// Create handles POST /v1/admin/screenings. Overlapping slots in the
// same hall are allowed but logged, matching the double-feature and
// marathon programming some cinemas run.
func (h *ScreeningAdminHandler) Create(c echo.Context) error {
	var req screeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and hall_id required"})
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() || !req.EndsAt.After(req.StartsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be after starts_at"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if n, err := h.Screenings.CountOverlapping(ctx, req.HallID, req.StartsAt.UTC(), req.EndsAt.UTC()); err == nil && n > 0 {
		log.Printf("screening overlaps %d existing slot(s) in hall %d", n, req.HallID)
	}

	sc := &model.Screening{
		MovieID:    req.MovieID,
		HallID:     req.HallID,
		StartsAt:   req.StartsAt.UTC(),
		EndsAt:     req.EndsAt.UTC(),
		PriceCents: req.PriceCents,
	}
	if err := h.Screenings.Create(ctx, sc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create screening failed"})
	}
	return c.JSON(http.StatusCreated, screeningResp{
		ID:         sc.ID,
		MovieID:    sc.MovieID,
		HallID:     sc.HallID,
		StartsAt:   sc.StartsAt,
		EndsAt:     sc.EndsAt,
		PriceCents: sc.PriceCents,
	})
}

// Delete handles DELETE /v1/admin/screenings/:id. Bookings for the
// screening are removed by the FK cascade.
func (h *ScreeningAdminHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Screenings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete screening failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
