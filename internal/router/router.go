// Package router defines how HTTP routes are registered for the site.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigbook/gigbook/internal/config"
	"github.com/gigbook/gigbook/internal/handler"
	"github.com/gigbook/gigbook/internal/middleware"
)

// Deps carries everything the router wires together. Cache and SearchLimit
// degrade to pass-through middleware when Redis is unavailable; Auth is only
// consulted for the /auth endpoints and, when Cfg.AuthRequired is set, for
// gating mutations.
type Deps struct {
	Cfg         config.Config
	Dir         *handler.DirectoryHandler
	Auth        *handler.AuthHandler
	Cache       *middleware.PageCache
	SearchLimit echo.MiddlewareFunc
	Log         zerolog.Logger
}

// New builds the Echo instance with logging, error pages and every route.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(d.Log)
	e.Use(middleware.RequestLogger(d.Log))

	registerDirectory(e, d)
	registerAuth(e, d)
	return e
}

func registerDirectory(e *echo.Echo, d Deps) {
	h := d.Dir
	cached := d.Cache.Middleware()

	// Mutations stay public unless AUTH_REQUIRED is set; deletes are then
	// further restricted to admins.
	var mutate, remove []echo.MiddlewareFunc
	if d.Cfg.AuthRequired {
		authn := middleware.JWTAuth(d.Cfg.JWTSecret)
		mutate = []echo.MiddlewareFunc{authn, middleware.RequireRole("MEMBER", "ADMIN")}
		remove = []echo.MiddlewareFunc{authn, middleware.RequireRole("ADMIN")}
	}

	e.GET("/", h.Home)
	e.GET("/healthz", handler.Health)

	e.GET("/venues", h.ListVenues, cached)
	e.POST("/venues/search", h.SearchVenues, d.SearchLimit)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue, mutate...)
	e.GET("/venues/:id", h.ShowVenue, cached)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue, mutate...)
	e.DELETE("/venues/:id", h.DeleteVenue, remove...)

	e.GET("/artists", h.ListArtists, cached)
	e.POST("/artists/search", h.SearchArtists, d.SearchLimit)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist, mutate...)
	e.GET("/artists/:id", h.ShowArtist, cached)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist, mutate...)
	e.DELETE("/artists/:id", h.DeleteArtist, remove...)

	e.GET("/shows", h.ListShows, cached)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow, mutate...)
}

func registerAuth(e *echo.Echo, d Deps) {
	a := d.Auth
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(d.Cfg.JWTSecret))
}

// errorHandler renders the site's error pages for browser routes and falls
// back to JSON for everything else.
func errorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("request failed")
		}

		page := "error500.html"
		if code == http.StatusNotFound {
			page = "error404.html"
		}
		if rerr := c.Render(code, page, echo.Map{"Title": http.StatusText(code)}); rerr != nil {
			_ = c.JSON(code, echo.Map{"error": http.StatusText(code)})
		}
	}
}
