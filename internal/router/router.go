// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mstepanov/cinema-booking/internal/handler"
	"github.com/mstepanov/cinema-booking/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication or state.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the /v1/auth endpoints plus the protected
// identity endpoints. The rate limiter sits after JWTAuth on the
// protected groups so authenticated callers get per-user buckets.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", rate)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)

	auth := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret), rate)
	auth.POST("/logout", a.Logout)

	me := e.Group("/v1", middleware.JWTAuth(jwtSecret), rate)
	me.GET("/me", a.Me)
}

// RegisterPublic registers the guest browse endpoints. Catalog
// listings go through the response cache; the seat grid does not,
// because a booking must show up on the very next fetch.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, rate, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", rate, cache)
	g.GET("/movies", b.ListMovies)
	g.GET("/movies/:id", b.GetMovie)
	g.GET("/screenings", b.ListUpcoming)
	g.GET("/screenings/today", b.Today)

	live := e.Group("/v1", rate)
	live.GET("/screenings/:id/seats", b.SeatMap)
}

// RegisterCustomer registers the booking endpoints for authenticated
// customers and admins alike; admins may book seats too.
func RegisterCustomer(e *echo.Echo, bh *handler.BookingHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("CUSTOMER", "ADMIN"), rate)
	g.POST("/bookings", bh.Create)
	g.GET("/my-bookings", bh.Mine)
	g.DELETE("/bookings/:id", bh.Cancel)
}

// RegisterAdmin registers catalog management under /v1/admin.
func RegisterAdmin(e *echo.Echo, m *handler.MovieAdminHandler, hl *handler.HallAdminHandler, s *handler.ScreeningAdminHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"), rate)

	g.POST("/movies", m.Create)
	g.GET("/movies", m.List)
	g.PUT("/movies/:id", m.Update)
	g.POST("/movies/:id/poster", m.UploadPoster)
	g.DELETE("/movies/:id", m.Delete)

	g.POST("/halls", hl.Create)
	g.GET("/halls", hl.List)
	g.DELETE("/halls/:id", hl.Delete)

	g.POST("/screenings", s.Create)
	g.DELETE("/screenings/:id", s.Delete)
}
