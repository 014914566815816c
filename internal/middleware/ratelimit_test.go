package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstepanov/cinema-booking/internal/utils"
)

// identityEcho routes /protected through the given middleware and has
// the handler report what the limiter would use as the bucket identity.
func identityEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	g := e.Group("", mw...)
	g.GET("/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, rateIdentity(c))
	})
	return e
}

func TestRateIdentity_AfterJWTAuth(t *testing.T) {
	// Registered after JWTAuth, the limiter sees the user id and the
	// bucket is per user, not the shared anon one.
	e := identityEcho(JWTAuth(testSecret))

	at, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", 15)
	require.NoError(t, err)

	rec := doRequest(t, e, at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func TestRateIdentity_Guest(t *testing.T) {
	e := identityEcho()

	rec := doRequest(t, e, "")
	assert.Equal(t, "anon", rec.Body.String())
}

func TestRateKey_SeparatesUsersOnSameRoute(t *testing.T) {
	e := echo.New()

	first := e.NewContext(newGetRequest("/v1/bookings"), nil)
	first.Set("user_id", float64(7))

	second := e.NewContext(newGetRequest("/v1/bookings"), nil)
	second.Set("user_id", float64(8))

	assert.NotEqual(t, rateKey("rl", first), rateKey("rl", second))
}

func newGetRequest(target string) *http.Request {
	r, _ := http.NewRequest(http.MethodGet, target, nil)
	r.RemoteAddr = "203.0.113.9:1234"
	return r
}
