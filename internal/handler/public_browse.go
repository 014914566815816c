package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mstepanov/cinema-booking/internal/booking"
	"github.com/mstepanov/cinema-booking/internal/model"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

// upcomingPageSize is the page length of the public screening listing.
const upcomingPageSize = 6

// BrowseHandler serves the unauthenticated catalog endpoints.
type BrowseHandler struct {
	Movies     *repository.MovieRepo
	Screenings *repository.ScreeningRepo
	Svc        *booking.Service
}

func NewBrowseHandler(m *repository.MovieRepo, s *repository.ScreeningRepo, svc *booking.Service) *BrowseHandler {
	return &BrowseHandler{Movies: m, Screenings: s, Svc: svc}
}

type movieResp struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DurationMin uint32  `json:"duration_min"`
	PosterPath  *string `json:"poster_path"`
}

func toMovieResp(m model.Movie) movieResp {
	return movieResp{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DurationMin: m.DurationMin,
		PosterPath:  m.PosterPath,
	}
}

// Today handles GET /v1/screenings/today: screenings that start later
// today, soonest first.
func (h *BrowseHandler) Today(c echo.Context) error {
	items, err := h.Screenings.ListToday(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListMovies handles GET /v1/movies.
func (h *BrowseHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResp(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetMovie handles GET /v1/movies/:id.
func (h *BrowseHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toMovieResp(*m))
}

// ListUpcoming handles GET /v1/screenings with optional movie_id filter
// and page-based pagination.
func (h *BrowseHandler) ListUpcoming(c echo.Context) error {
	var movieID *uint64
	if raw := c.QueryParam("movie_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
		}
		movieID = &id
	}
	page := queryPage(c)

	items, total, err := h.Screenings.ListUpcoming(c.Request().Context(), time.Now().UTC(), movieID, page, upcomingPageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": upcomingPageSize,
	})
}

type seatCell struct {
	ID     uint64 `json:"id"`
	Row    uint32 `json:"row"`
	Number uint32 `json:"number"`
	Booked bool   `json:"booked"`
}

// SeatMap handles GET /v1/screenings/:id/seats and returns the hall
// grid for one screening, row by row, each seat flagged booked or free.
func (h *BrowseHandler) SeatMap(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	grid, err := h.Svc.SeatMap(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rows := make([][]seatCell, 0, len(grid))
	for _, row := range grid {
		cells := make([]seatCell, 0, len(row))
		for _, st := range row {
			cells = append(cells, seatCell{
				ID:     st.Seat.ID,
				Row:    st.Seat.Row,
				Number: st.Seat.Number,
				Booked: st.Booked,
			})
		}
		rows = append(rows, cells)
	}
	return c.JSON(http.StatusOK, echo.Map{"screening_id": id, "rows": rows})
}
