package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigbook/gigbook/internal/form"
	"github.com/gigbook/gigbook/internal/repository"
)

// ListShows handles GET /shows.
func (h *DirectoryHandler) ListShows(c echo.Context) error {
	shows, err := h.Query.ListShows(c.Request().Context())
	if err != nil {
		return err
	}
	data := h.pageData(c, "Shows")
	data["Shows"] = shows
	return c.Render(http.StatusOK, "shows.html", data)
}

// NewShowForm handles GET /shows/create.
func (h *DirectoryHandler) NewShowForm(c echo.Context) error {
	data := h.pageData(c, "List a show")
	data["Form"] = form.ShowForm{}
	return c.Render(http.StatusOK, "show_form.html", data)
}

func (h *DirectoryHandler) renderShowForm(c echo.Context, f form.ShowForm, fieldErrs map[string]string) error {
	data := h.pageData(c, "List a show")
	data["Form"] = f
	data["Errors"] = fieldErrs
	return c.Render(http.StatusBadRequest, "show_form.html", data)
}

// CreateShow handles POST /shows/create. Unknown artist or venue ids come
// back as field errors on the form rather than a 404, since the ids are
// user-typed input here.
func (h *DirectoryHandler) CreateShow(c echo.Context) error {
	var f form.ShowForm
	if err := c.Bind(&f); err != nil {
		return h.renderShowForm(c, f, map[string]string{"form": "invalid submission"})
	}
	if errs := h.Validate.Check(f); errs != nil {
		return h.renderShowForm(c, f, errs)
	}
	input, fieldErrs := f.Input()
	if fieldErrs != nil {
		return h.renderShowForm(c, f, fieldErrs)
	}

	show, err := h.Mutation.CreateShow(c.Request().Context(), input)
	if err != nil {
		if fields, ok := asValidation(err); ok {
			return h.renderShowForm(c, f, fields)
		}
		if errors.Is(err, repository.ErrArtistNotFound) {
			return h.renderShowForm(c, f, map[string]string{"artist_id": "no artist with that id"})
		}
		if errors.Is(err, repository.ErrVenueNotFound) {
			return h.renderShowForm(c, f, map[string]string{"venue_id": "no venue with that id"})
		}
		h.Flash.Add(c, "An error occurred. Show could not be listed.")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	h.Flash.Add(c, "Show was successfully listed!")
	h.publish(c, "created", "show", show.ID, "")
	return c.Redirect(http.StatusSeeOther, "/shows")
}
