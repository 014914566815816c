package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func cacheContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/screenings/:id/seats")
	return c
}

func TestCacheKey_DistinctPerScreening(t *testing.T) {
	// Both requests resolve to the same registered route pattern. The
	// key must still differ, or one screening's seat grid would be
	// served for every other.
	first := cacheKey("cache", cacheContext(t, "/v1/screenings/1/seats"))
	second := cacheKey("cache", cacheContext(t, "/v1/screenings/2/seats"))

	assert.NotEqual(t, first, second)
}

func TestCacheKey_StableForSameRequest(t *testing.T) {
	a := cacheKey("cache", cacheContext(t, "/v1/screenings/7/seats"))
	b := cacheKey("cache", cacheContext(t, "/v1/screenings/7/seats"))

	assert.Equal(t, a, b)
}

func TestCacheKey_QueryChangesKey(t *testing.T) {
	plain := cacheKey("cache", cacheContext(t, "/v1/screenings?page=1"))
	paged := cacheKey("cache", cacheContext(t, "/v1/screenings?page=2"))

	assert.NotEqual(t, plain, paged)
}
