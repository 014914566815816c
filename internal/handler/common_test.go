package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCurrentUserID(t *testing.T) {
	cases := []struct {
		name   string
		value  interface{}
		wantID uint64
		wantOK bool
	}{
		{"float64 claim", float64(42), 42, true},
		{"uint64 claim", uint64(7), 7, true},
		{"numeric string", "19", 19, true},
		{"zero", float64(0), 0, false},
		{"garbage string", "abc", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newContext("/")
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			id, ok := currentUserID(c)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantID, id)
			}
		})
	}
}

func TestQueryPage(t *testing.T) {
	assert.Equal(t, 1, queryPage(newContext("/")))
	assert.Equal(t, 1, queryPage(newContext("/?page=0")))
	assert.Equal(t, 1, queryPage(newContext("/?page=-3")))
	assert.Equal(t, 1, queryPage(newContext("/?page=abc")))
	assert.Equal(t, 4, queryPage(newContext("/?page=4")))
}

func TestPathID(t *testing.T) {
	c := newContext("/")
	c.SetParamNames("id")
	c.SetParamValues("12")
	id, ok := pathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(12), id)

	c.SetParamValues("zero")
	_, ok = pathID(c, "id")
	assert.False(t, ok)
}
