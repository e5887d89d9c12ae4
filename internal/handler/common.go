// Package handler contains the HTTP handlers behind the directory's pages.
// Handlers translate between the web layer (forms, flash messages, redirects)
// and the directory services; they never see raw storage errors.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/gigbook/gigbook/internal/directory"
	"github.com/gigbook/gigbook/internal/queue"
)

const flashSessionName = "gigbook_flash"

// Flasher stores transient status messages in a cookie session so they
// survive the redirect after a mutation.
type Flasher struct {
	store *sessions.CookieStore
}

func NewFlasher(secret string) *Flasher {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flasher{store: store}
}

// Add queues a message for the next rendered page.
func (f *Flasher) Add(c echo.Context, msg string) {
	sess, _ := f.store.Get(c.Request(), flashSessionName)
	sess.AddFlash(msg)
	_ = sess.Save(c.Request(), c.Response())
}

// Take drains and returns the queued messages.
func (f *Flasher) Take(c echo.Context) []string {
	sess, err := f.store.Get(c.Request(), flashSessionName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	msgs := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// ListingEvents publishes listing lifecycle events to the message broker.
// Publish failures are the publisher's problem; handlers fire and forget.
type ListingEvents interface {
	Publish(ctx context.Context, ev queue.ListingEvent)
}

// PageInvalidator drops cached listing pages after a successful mutation.
type PageInvalidator interface {
	Bump(ctx context.Context)
}

// DirectoryHandler bundles the services and web collaborators for the venue,
// artist and show pages. Events and Cache may be nil when the broker or Redis
// are not configured.
type DirectoryHandler struct {
	Query    *directory.QueryService
	Mutation *directory.MutationService
	Validate formValidator
	Flash    *Flasher
	Events   ListingEvents
	Cache    PageInvalidator
}

// formValidator is the narrow slice of the form package the handlers need.
type formValidator interface {
	Check(s any) map[string]string
}

func NewDirectoryHandler(q *directory.QueryService, m *directory.MutationService, v formValidator, f *Flasher) *DirectoryHandler {
	if q == nil || m == nil || v == nil || f == nil {
		panic("nil dependency passed to NewDirectoryHandler")
	}
	return &DirectoryHandler{Query: q, Mutation: m, Validate: v, Flash: f}
}

// genreChoices is the fixed tag vocabulary offered by the listing forms.
var genreChoices = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre",
	"Pop", "Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Other",
}

// parseID reads a numeric path parameter; a non-numeric id is treated as a
// missing page.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// pageData assembles the common render payload, draining pending flashes.
func (h *DirectoryHandler) pageData(c echo.Context, title string) echo.Map {
	return echo.Map{
		"Title":        title,
		"Flashes":      h.Flash.Take(c),
		"GenreChoices": genreChoices,
	}
}

// publish emits a listing event and bumps the page cache after a successful
// mutation. Both collaborators are optional.
func (h *DirectoryHandler) publish(c echo.Context, kind, entity string, id uint64, name string) {
	ctx := c.Request().Context()
	if h.Events != nil {
		h.Events.Publish(ctx, queue.NewListingEvent(kind, entity, id, name))
	}
	if h.Cache != nil {
		h.Cache.Bump(ctx)
	}
}

// asValidation unwraps a directory ValidationError, if that is what err is.
func asValidation(err error) (map[string]string, bool) {
	var verr *directory.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
