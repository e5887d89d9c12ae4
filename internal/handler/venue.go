package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigbook/gigbook/internal/form"
	"github.com/gigbook/gigbook/internal/repository"
)

// ListVenues handles GET /venues with all venues grouped by city and state.
func (h *DirectoryHandler) ListVenues(c echo.Context) error {
	groups, err := h.Query.ListVenuesByLocation(c.Request().Context())
	if err != nil {
		return err
	}
	data := h.pageData(c, "Venues")
	data["Groups"] = groups
	return c.Render(http.StatusOK, "venues.html", data)
}

// SearchVenues handles POST /venues/search.
func (h *DirectoryHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.Query.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return err
	}
	data := h.pageData(c, "Venue search")
	data["Results"] = results
	data["SearchTerm"] = term
	return c.Render(http.StatusOK, "search_venues.html", data)
}

// ShowVenue handles GET /venues/:id.
func (h *DirectoryHandler) ShowVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.Query.VenueDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	data := h.pageData(c, detail.Venue.Name)
	data["Detail"] = detail
	return c.Render(http.StatusOK, "show_venue.html", data)
}

// NewVenueForm handles GET /venues/create.
func (h *DirectoryHandler) NewVenueForm(c echo.Context) error {
	data := h.pageData(c, "List a venue")
	data["Form"] = form.VenueForm{}
	return c.Render(http.StatusOK, "venue_form.html", data)
}

func (h *DirectoryHandler) renderVenueForm(c echo.Context, f form.VenueForm, editID uint64, fieldErrs map[string]string) error {
	data := h.pageData(c, "Venue")
	data["Form"] = f
	data["Errors"] = fieldErrs
	if editID != 0 {
		data["EditID"] = editID
	}
	return c.Render(http.StatusBadRequest, "venue_form.html", data)
}

// CreateVenue handles POST /venues/create. Validation failures re-render the
// form without touching storage; persistence failures flash an error and
// return the 500 page.
func (h *DirectoryHandler) CreateVenue(c echo.Context) error {
	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return h.renderVenueForm(c, f, 0, map[string]string{"form": "invalid submission"})
	}
	if errs := h.Validate.Check(f); errs != nil {
		return h.renderVenueForm(c, f, 0, errs)
	}

	venue, err := h.Mutation.CreateVenue(c.Request().Context(), f.Input())
	if err != nil {
		if fields, ok := asValidation(err); ok {
			return h.renderVenueForm(c, f, 0, fields)
		}
		h.Flash.Add(c, "An error occurred. Venue "+f.Name+" could not be listed.")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	h.Flash.Add(c, "Venue "+venue.Name+" was successfully listed!")
	h.publish(c, "created", "venue", venue.ID, venue.Name)
	return c.Redirect(http.StatusSeeOther, "/venues/"+formatID(venue.ID))
}

// EditVenueForm handles GET /venues/:id/edit with the form prefilled from the
// current record.
func (h *DirectoryHandler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	venue, err := h.Query.VenueDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}

	v := venue.Venue
	data := h.pageData(c, "Edit "+v.Name)
	data["Form"] = form.VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		WebsiteLink:        v.WebsiteLink,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
	data["EditID"] = id
	return c.Render(http.StatusOK, "venue_form.html", data)
}

// UpdateVenue handles POST /venues/:id/edit as a full replace of all mutable
// fields.
func (h *DirectoryHandler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return h.renderVenueForm(c, f, id, map[string]string{"form": "invalid submission"})
	}
	if errs := h.Validate.Check(f); errs != nil {
		return h.renderVenueForm(c, f, id, errs)
	}

	venue, err := h.Mutation.UpdateVenue(c.Request().Context(), id, f.Input())
	if err != nil {
		if fields, ok := asValidation(err); ok {
			return h.renderVenueForm(c, f, id, fields)
		}
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		h.Flash.Add(c, "An error occurred. Venue "+f.Name+" could not be updated.")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	h.Flash.Add(c, "Venue "+venue.Name+" was successfully updated!")
	h.publish(c, "updated", "venue", venue.ID, venue.Name)
	return c.Redirect(http.StatusSeeOther, "/venues/"+formatID(venue.ID))
}

// DeleteVenue handles DELETE /venues/:id. The route is called from script,
// so it answers JSON with the page the client should navigate to.
func (h *DirectoryHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	name, err := h.Mutation.DeleteVenue(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		h.Flash.Add(c, "An error occurred. Venue "+name+" could not be removed.")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	h.Flash.Add(c, "Venue "+name+" was successfully deleted!")
	h.publish(c, "deleted", "venue", id, name)
	return c.JSON(http.StatusOK, echo.Map{"redirect": "/venues"})
}
