package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlasherRoundTrip(t *testing.T) {
	f := NewFlasher("test-secret")
	e := echo.New()

	// First request queues a message; the session cookie rides the response.
	req := httptest.NewRequest(http.MethodPost, "/venues/create", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	f.Add(c, "Venue The Musical Hop was successfully listed!")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Second request presents the cookie and drains the flash.
	req2 := httptest.NewRequest(http.MethodGet, "/venues/1", nil)
	for _, ck := range cookies {
		req2.AddCookie(ck)
	}
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req2, rec2)

	msgs := f.Take(c2)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", msgs[0])

	// A third visit sees nothing.
	req3 := httptest.NewRequest(http.MethodGet, "/venues/1", nil)
	for _, ck := range rec2.Result().Cookies() {
		req3.AddCookie(ck)
	}
	c3 := e.NewContext(req3, httptest.NewRecorder())
	assert.Empty(t, f.Take(c3))
}

func TestParseID(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := parseID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.SetParamValues("abc")
	_, err = parseID(c, "id")
	assert.ErrorIs(t, err, echo.ErrNotFound)

	c.SetParamValues("-1")
	_, err = parseID(c, "id")
	assert.ErrorIs(t, err, echo.ErrNotFound)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)

	require.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
