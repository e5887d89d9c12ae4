package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home renders the landing page.
func (h *DirectoryHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", h.pageData(c, ""))
}

// Health is a liveness endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
