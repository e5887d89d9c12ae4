package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigbook/gigbook/internal/clock"
	"github.com/gigbook/gigbook/internal/repository"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newQueryService(v *fakeVenueStore, a *fakeArtistStore, s *fakeShowStore) *QueryService {
	return NewQueryService(v, a, s, clock.NewFixed(testNow))
}

func TestListVenuesByLocationGroups(t *testing.T) {
	venues := newFakeVenueStore()
	venues.listRows = []repository.VenueUpcoming{
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", UpcomingShows: 1},
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", UpcomingShows: 0},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY", UpcomingShows: 0},
	}
	svc := newQueryService(venues, newFakeArtistStore(), newFakeShowStore())

	groups, err := svc.ListVenuesByLocation(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "San Francisco", groups[0].City)
	assert.Equal(t, "CA", groups[0].State)
	require.Len(t, groups[0].Venues, 2)
	assert.Equal(t, 1, groups[0].Venues[0].UpcomingShows)

	assert.Equal(t, "New York", groups[1].City)
	require.Len(t, groups[1].Venues, 1)
	assert.Equal(t, uint64(2), groups[1].Venues[0].ID)
}

func TestListVenuesByLocationEmpty(t *testing.T) {
	svc := newQueryService(newFakeVenueStore(), newFakeArtistStore(), newFakeShowStore())

	groups, err := svc.ListVenuesByLocation(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestSearchVenuesCountMatchesData(t *testing.T) {
	venues := newFakeVenueStore()
	venues.add(repository.Venue{ID: 1, Name: "The Musical Hop"})
	venues.add(repository.Venue{ID: 2, Name: "Park Square Live Music & Coffee"})
	svc := newQueryService(venues, newFakeArtistStore(), newFakeShowStore())

	res, err := svc.SearchVenues(context.Background(), "music")
	require.NoError(t, err)
	assert.Equal(t, len(res.Data), res.Count)
	assert.Equal(t, "music", venues.searched)
}

func TestSearchArtistsEmptyTermPassedThrough(t *testing.T) {
	artists := newFakeArtistStore()
	artists.add(repository.Artist{ID: 4, Name: "Guns N Petals"})
	svc := newQueryService(newFakeVenueStore(), artists, newFakeShowStore())

	res, err := svc.SearchArtists(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "", artists.searched)
}

func TestVenueDetailPartitionsShows(t *testing.T) {
	venues := newFakeVenueStore()
	venues.add(repository.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA"})

	shows := newFakeShowStore()
	shows.byVenue[1] = []repository.VenueShow{
		{ArtistID: 4, ArtistName: "Guns N Petals", StartTime: testNow.Add(-time.Hour)},
		{ArtistID: 5, ArtistName: "Matt Quevedo", StartTime: testNow},
		{ArtistID: 6, ArtistName: "The Wild Sax Band", StartTime: testNow.Add(time.Hour)},
	}
	svc := newQueryService(venues, newFakeArtistStore(), shows)

	detail, err := svc.VenueDetail(context.Background(), 1)
	require.NoError(t, err)

	// The show starting exactly at the captured instant lands in neither bucket.
	require.Len(t, detail.PastShows, 1)
	require.Len(t, detail.UpcomingShows, 1)
	assert.Equal(t, 1, detail.PastCount)
	assert.Equal(t, 1, detail.UpcomingCount)
	assert.Equal(t, "Guns N Petals", detail.PastShows[0].ArtistName)
	assert.Equal(t, "The Wild Sax Band", detail.UpcomingShows[0].ArtistName)
	assert.Equal(t, "2025-06-15 11:00:00", detail.PastShows[0].StartTime)
}

func TestVenueDetailNotFound(t *testing.T) {
	svc := newQueryService(newFakeVenueStore(), newFakeArtistStore(), newFakeShowStore())

	_, err := svc.VenueDetail(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
}

func TestVenueDetailNoShows(t *testing.T) {
	venues := newFakeVenueStore()
	venues.add(repository.Venue{ID: 7, Name: "Empty Room"})
	svc := newQueryService(venues, newFakeArtistStore(), newFakeShowStore())

	detail, err := svc.VenueDetail(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, detail.PastCount)
	assert.Zero(t, detail.UpcomingCount)
	assert.Empty(t, detail.PastShows)
	assert.Empty(t, detail.UpcomingShows)
}

func TestArtistDetailPartitionsShows(t *testing.T) {
	artists := newFakeArtistStore()
	artists.add(repository.Artist{ID: 4, Name: "Guns N Petals"})

	shows := newFakeShowStore()
	shows.byArtist[4] = []repository.ArtistShow{
		{VenueID: 1, VenueName: "The Musical Hop", StartTime: testNow.Add(-48 * time.Hour)},
		{VenueID: 3, VenueName: "Park Square Live Music & Coffee", StartTime: testNow.Add(24 * time.Hour)},
	}
	svc := newQueryService(newFakeVenueStore(), artists, shows)

	detail, err := svc.ArtistDetail(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, detail.PastShows, 1)
	require.Len(t, detail.UpcomingShows, 1)
	assert.Equal(t, "The Musical Hop", detail.PastShows[0].VenueName)
	assert.Equal(t, uint64(3), detail.UpcomingShows[0].VenueID)
}

func TestArtistDetailNotFound(t *testing.T) {
	svc := newQueryService(newFakeVenueStore(), newFakeArtistStore(), newFakeShowStore())

	_, err := svc.ArtistDetail(context.Background(), 12)
	assert.ErrorIs(t, err, repository.ErrArtistNotFound)
}

func TestListShowsFormatsStartTimes(t *testing.T) {
	shows := newFakeShowStore()
	shows.listings = []repository.ShowListing{
		{VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals",
			StartTime: time.Date(2025, 5, 21, 21, 30, 0, 0, time.UTC)},
	}
	svc := newQueryService(newFakeVenueStore(), newFakeArtistStore(), shows)

	rows, err := svc.ListShows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-05-21 21:30:00", rows[0].StartTime)
}

func TestQueryStorageErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	venues := newFakeVenueStore()
	venues.fail = boom
	svc := newQueryService(venues, newFakeArtistStore(), newFakeShowStore())

	_, err := svc.ListVenuesByLocation(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = svc.SearchVenues(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}
