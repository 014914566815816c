package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstepanov/cinema-booking/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, e *echo.Echo, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	g := e.Group("", mw...)
	g.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})
	return e
}

func TestJWTAuth_ValidToken(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))

	at, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", 15)
	require.NoError(t, err)

	rec := doRequest(t, e, at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"user_id\":42")
	assert.Contains(t, rec.Body.String(), "\"role\":\"CUSTOMER\"")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))

	rec := doRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))

	at, err := utils.NewAccessToken("another-secret", 42, "CUSTOMER", 15)
	require.NoError(t, err)

	rec := doRequest(t, e, at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))

	rec := doRequest(t, e, "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret), RequireRole("ADMIN"))

	at, err := utils.NewAccessToken(testSecret, 1, "ADMIN", 15)
	require.NoError(t, err)

	rec := doRequest(t, e, at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret), RequireRole("ADMIN"))

	at, err := utils.NewAccessToken(testSecret, 1, "CUSTOMER", 15)
	require.NoError(t, err)

	rec := doRequest(t, e, at.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
