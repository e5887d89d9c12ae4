package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReportsFormFieldNames(t *testing.T) {
	x := NewValidator()

	errs := x.Check(VenueForm{City: "San Francisco", WebsiteLink: "not a url"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "state")
	assert.Contains(t, errs, "address")
	assert.Contains(t, errs, "website_link")
	assert.NotContains(t, errs, "city")
}

func TestCheckValidVenue(t *testing.T) {
	x := NewValidator()

	errs := x.Check(VenueForm{
		Name:        "The Musical Hop",
		City:        "San Francisco",
		State:       "CA",
		Address:     "1015 Folsom Street",
		WebsiteLink: "https://themusicalhop.com",
		Genres:      []string{"Jazz", "Reggae"},
	})
	assert.Nil(t, errs)
}

func TestCheckArtistOmitsAddress(t *testing.T) {
	x := NewValidator()

	errs := x.Check(ArtistForm{Name: "Guns N Petals", City: "San Francisco", State: "CA"})
	assert.Nil(t, errs)
}

func TestShowFormInputParsesDisplayFormat(t *testing.T) {
	f := ShowForm{ArtistID: 4, VenueID: 1, StartTime: "2025-06-01 20:00:00"}

	in, errs := f.Input()
	require.Nil(t, errs)
	assert.Equal(t, uint64(4), in.ArtistID)
	assert.Equal(t, time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC), in.StartTime)
}

func TestShowFormInputParsesDatetimeLocal(t *testing.T) {
	f := ShowForm{ArtistID: 4, VenueID: 1, StartTime: "2025-06-01T20:00"}

	in, errs := f.Input()
	require.Nil(t, errs)
	assert.Equal(t, time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC), in.StartTime)
}

func TestShowFormInputRejectsGarbage(t *testing.T) {
	f := ShowForm{ArtistID: 4, VenueID: 1, StartTime: "next tuesday"}

	_, errs := f.Input()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "start_time")
}

func TestShowFormRequiredFields(t *testing.T) {
	x := NewValidator()

	errs := x.Check(ShowForm{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "artist_id")
	assert.Contains(t, errs, "venue_id")
	assert.Contains(t, errs, "start_time")
}
