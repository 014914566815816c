package handler

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mstepanov/cinema-booking/internal/model"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

// MovieAdminHandler serves the catalog management endpoints for movies.
// All routes run behind JWTAuth with the ADMIN role.
type MovieAdminHandler struct {
	Movies   *repository.MovieRepo
	MediaDir string
}

func NewMovieAdminHandler(m *repository.MovieRepo, mediaDir string) *MovieAdminHandler {
	return &MovieAdminHandler{Movies: m, MediaDir: mediaDir}
}

type movieReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DurationMin uint32 `json:"duration_min"`
}

func (r *movieReq) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title required"
	}
	if r.DurationMin == 0 {
		return "duration_min must be positive"
	}
	return ""
}

// Create handles POST /v1/admin/movies.
func (h *MovieAdminHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	m := &model.Movie{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		DurationMin: req.DurationMin,
	}
	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, toMovieResp(*m))
}

// List handles GET /v1/admin/movies.  Same data as the public listing
// but outside the response cache, so admins see their edits at once.
func (h *MovieAdminHandler) List(c echo.Context) error {
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

// Update handles PUT /v1/admin/movies/:id.
func (h *MovieAdminHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	m.Title = req.Title
	m.Description = strings.TrimSpace(req.Description)
	m.DurationMin = req.DurationMin

	if err := h.Movies.Update(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, toMovieResp(*m))
}

// UploadPoster handles POST /v1/admin/movies/:id/poster. The image is
// stored under MediaDir with a random name so repeated uploads never
// collide, and the movie's poster_path is updated to point at it.
func (h *MovieAdminHandler) UploadPoster(c echo.Context) error {
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

	file, err := c.FormFile("poster")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "poster file required"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.MediaDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save poster failed"})
	}
	name := uuid.NewString() + ext
	path := filepath.Join(h.MediaDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save poster failed"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save poster failed"})
	}

	m.PosterPath = &path
	if err := h.Movies.Update(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, toMovieResp(*m))
}

// Delete handles DELETE /v1/admin/movies/:id. Screenings of the movie
// and their bookings go with it via the FK cascade.
func (h *MovieAdminHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
