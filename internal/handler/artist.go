package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigbook/gigbook/internal/form"
	"github.com/gigbook/gigbook/internal/repository"
)

// ListArtists handles GET /artists.
func (h *DirectoryHandler) ListArtists(c echo.Context) error {
	artists, err := h.Query.ListArtists(c.Request().Context())
	if err != nil {
		return err
	}
	data := h.pageData(c, "Artists")
	data["Artists"] = artists
	return c.Render(http.StatusOK, "artists.html", data)
}

// SearchArtists handles POST /artists/search.
func (h *DirectoryHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.Query.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return err
	}
	data := h.pageData(c, "Artist search")
	data["Results"] = results
	data["SearchTerm"] = term
	return c.Render(http.StatusOK, "search_artists.html", data)
}

// ShowArtist handles GET /artists/:id.
func (h *DirectoryHandler) ShowArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.Query.ArtistDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	data := h.pageData(c, detail.Artist.Name)
	data["Detail"] = detail
	return c.Render(http.StatusOK, "show_artist.html", data)
}

// NewArtistForm handles GET /artists/create.
func (h *DirectoryHandler) NewArtistForm(c echo.Context) error {
	data := h.pageData(c, "List an artist")
	data["Form"] = form.ArtistForm{}
	return c.Render(http.StatusOK, "artist_form.html", data)
}

func (h *DirectoryHandler) renderArtistForm(c echo.Context, f form.ArtistForm, editID uint64, fieldErrs map[string]string) error {
	data := h.pageData(c, "Artist")
	data["Form"] = f
	data["Errors"] = fieldErrs
	if editID != 0 {
		data["EditID"] = editID
	}
	return c.Render(http.StatusBadRequest, "artist_form.html", data)
}

// CreateArtist handles POST /artists/create.
func (h *DirectoryHandler) CreateArtist(c echo.Context) error {
	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return h.renderArtistForm(c, f, 0, map[string]string{"form": "invalid submission"})
	}
	if errs := h.Validate.Check(f); errs != nil {
		return h.renderArtistForm(c, f, 0, errs)
	}

	artist, err := h.Mutation.CreateArtist(c.Request().Context(), f.Input())
	if err != nil {
		if fields, ok := asValidation(err); ok {
			return h.renderArtistForm(c, f, 0, fields)
		}
		h.Flash.Add(c, "An error occurred. Artist "+f.Name+" could not be listed.")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	h.Flash.Add(c, "Artist "+artist.Name+" was successfully listed!")
	h.publish(c, "created", "artist", artist.ID, artist.Name)
	return c.Redirect(http.StatusSeeOther, "/artists/"+formatID(artist.ID))
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *DirectoryHandler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.Query.ArtistDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		return err
	}

	a := detail.Artist
	data := h.pageData(c, "Edit "+a.Name)
	data["Form"] = form.ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		WebsiteLink:        a.WebsiteLink,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
	data["EditID"] = id
	return c.Render(http.StatusOK, "artist_form.html", data)
}

// UpdateArtist handles POST /artists/:id/edit.
func (h *DirectoryHandler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return h.renderArtistForm(c, f, id, map[string]string{"form": "invalid submission"})
	}
	if errs := h.Validate.Check(f); errs != nil {
		return h.renderArtistForm(c, f, id, errs)
	}

	artist, err := h.Mutation.UpdateArtist(c.Request().Context(), id, f.Input())
	if err != nil {
		if fields, ok := asValidation(err); ok {
			return h.renderArtistForm(c, f, id, fields)
		}
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		h.Flash.Add(c, "An error occurred. Artist "+f.Name+" could not be updated.")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	h.Flash.Add(c, "Artist "+artist.Name+" was successfully updated!")
	h.publish(c, "updated", "artist", artist.ID, artist.Name)
	return c.Redirect(http.StatusSeeOther, "/artists/"+formatID(artist.ID))
}

// DeleteArtist handles DELETE /artists/:id, answering JSON like DeleteVenue.
func (h *DirectoryHandler) DeleteArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	name, err := h.Mutation.DeleteArtist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		h.Flash.Add(c, "An error occurred. Artist "+name+" could not be removed.")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	h.Flash.Add(c, "Artist "+name+" was successfully deleted!")
	h.publish(c, "deleted", "artist", id, name)
	return c.JSON(http.StatusOK, echo.Map{"redirect": "/artists"})
}
