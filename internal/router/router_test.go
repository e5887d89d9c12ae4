package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigbook/gigbook/internal/view"
)

func TestErrorHandlerRendersErrorPages(t *testing.T) {
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	handle := errorHandler(zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/venues/999", nil), rec)
	handle(echo.ErrNotFound, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/venues", nil), rec)
	handle(echo.NewHTTPError(http.StatusInternalServerError), c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestErrorHandlerFallsBackToJSON(t *testing.T) {
	e := echo.New() // no renderer installed
	handle := errorHandler(zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/missing", nil), rec)
	handle(echo.ErrNotFound, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")
}
