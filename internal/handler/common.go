// Package handler contains the HTTP endpoint implementations. Handlers
// bind and validate input, call repositories or the booking service,
// and translate sentinel errors into status codes.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID reads the user id stored by the JWT middleware. JWT
// numeric claims decode as float64, but string subjects are accepted
// too.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), v > 0
	case uint64:
		return v, v > 0
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		return n, err == nil && n > 0
	default:
		return 0, false
	}
}

// pathID parses the named path parameter as an unsigned id.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

// queryPage reads the "page" query parameter, defaulting to 1.
func queryPage(c echo.Context) int {
	p, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}
