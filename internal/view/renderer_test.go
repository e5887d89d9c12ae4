package view

import (
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigbook/gigbook/internal/directory"
)

func TestNewRendererParsesAllTemplates(t *testing.T) {
	_, err := NewRenderer()
	require.NoError(t, err)
}

func TestRenderVenuesPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var sb strings.Builder
	data := echo.Map{
		"Title":   "Venues",
		"Flashes": []string{"Venue The Musical Hop was successfully listed!"},
		"Groups": []directory.CityGroup{
			{City: "San Francisco", State: "CA", Venues: []directory.VenueSummary{
				{ID: 1, Name: "The Musical Hop", UpcomingShows: 2},
			}},
		},
	}
	require.NoError(t, r.Render(&sb, "venues.html", data, nil))

	out := sb.String()
	assert.Contains(t, out, "The Musical Hop")
	assert.Contains(t, out, "San Francisco, CA")
	assert.Contains(t, out, "successfully listed!")
	assert.Contains(t, out, `href="/venues/1"`)
}

func TestRenderErrorPages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{"error404.html", "error500.html"} {
		var sb strings.Builder
		require.NoError(t, r.Render(&sb, name, echo.Map{"Title": "oops"}, nil))
		assert.NotEmpty(t, sb.String())
	}
}
