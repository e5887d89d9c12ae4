package directory

import (
	"context"

	"github.com/gigbook/gigbook/internal/clock"
	"github.com/gigbook/gigbook/internal/repository"
)

// startTimeLayout is the display format for show start times.
const startTimeLayout = "2006-01-02 15:04:05"

// VenueSummary is one venue inside a location group.
type VenueSummary struct {
	ID            uint64
	Name          string
	UpcomingShows int
}

// CityGroup collects the venues of one distinct (city, state) pair.
type CityGroup struct {
	City   string
	State  string
	Venues []VenueSummary
}

// SearchResults carries a name search outcome; Count always equals len(Data).
type SearchResults struct {
	Count int
	Data  []repository.Ref
}

// VenueShowView is one past or upcoming show on a venue page, showing the
// artist side of the booking.
type VenueShowView struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// ArtistShowView is one past or upcoming show on an artist page, showing the
// venue side of the booking.
type ArtistShowView struct {
	VenueID        uint64
	VenueName      string
	VenueImageLink string
	StartTime      string
}

// VenueDetail is everything a venue page renders.
type VenueDetail struct {
	Venue         repository.Venue
	PastShows     []VenueShowView
	UpcomingShows []VenueShowView
	PastCount     int
	UpcomingCount int
}

// ArtistDetail is everything an artist page renders.
type ArtistDetail struct {
	Artist        repository.Artist
	PastShows     []ArtistShowView
	UpcomingShows []ArtistShowView
	PastCount     int
	UpcomingCount int
}

// ShowRow is one row of the shows index with its start time already
// formatted.
type ShowRow struct {
	VenueID         uint64
	VenueName       string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// QueryService owns the read-only operations of the directory. Every
// time-relative classification captures one instant from the injected clock
// per call, so a single page renders a consistent snapshot.
type QueryService struct {
	venues  VenueStore
	artists ArtistStore
	shows   ShowStore
	clock   clock.Clock
}

func NewQueryService(venues VenueStore, artists ArtistStore, shows ShowStore, clk clock.Clock) *QueryService {
	return &QueryService{venues: venues, artists: artists, shows: shows, clock: clk}
}

// ListVenuesByLocation returns all venues grouped by distinct (city, state)
// pairs, each venue annotated with its upcoming-show count relative to one
// fixed now. Group and venue ordering is deterministic: groups by state then
// city ascending, venues by name then id.
func (s *QueryService) ListVenuesByLocation(ctx context.Context) ([]CityGroup, error) {
	now := s.clock.Now()
	rows, err := s.venues.ListWithUpcomingCounts(ctx, now)
	if err != nil {
		return nil, err
	}

	var groups []CityGroup
	for _, v := range rows {
		n := len(groups)
		if n == 0 || groups[n-1].City != v.City || groups[n-1].State != v.State {
			groups = append(groups, CityGroup{City: v.City, State: v.State})
			n++
		}
		groups[n-1].Venues = append(groups[n-1].Venues, VenueSummary{
			ID:            v.ID,
			Name:          v.Name,
			UpcomingShows: v.UpcomingShows,
		})
	}
	return groups, nil
}

// SearchVenues matches the term as a case-insensitive literal substring of
// venue names only. An empty term matches every venue.
func (s *QueryService) SearchVenues(ctx context.Context, term string) (SearchResults, error) {
	refs, err := s.venues.SearchByName(ctx, term)
	if err != nil {
		return SearchResults{}, err
	}
	return SearchResults{Count: len(refs), Data: refs}, nil
}

// SearchArtists matches the term as a case-insensitive literal substring of
// artist names only.
func (s *QueryService) SearchArtists(ctx context.Context, term string) (SearchResults, error) {
	refs, err := s.artists.SearchByName(ctx, term)
	if err != nil {
		return SearchResults{}, err
	}
	return SearchResults{Count: len(refs), Data: refs}, nil
}

// VenueDetail assembles a venue page: the record plus its shows partitioned
// into past and upcoming around one instant captured at the start of the
// call. A show starting exactly at that instant counts as neither.
func (s *QueryService) VenueDetail(ctx context.Context, id uint64) (*VenueDetail, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	detail := &VenueDetail{Venue: *venue}
	for _, sh := range shows {
		view := VenueShowView{
			ArtistID:        sh.ArtistID,
			ArtistName:      sh.ArtistName,
			ArtistImageLink: sh.ArtistImageLink,
			StartTime:       sh.StartTime.Format(startTimeLayout),
		}
		switch {
		case sh.StartTime.Before(now):
			detail.PastShows = append(detail.PastShows, view)
		case sh.StartTime.After(now):
			detail.UpcomingShows = append(detail.UpcomingShows, view)
		}
	}
	detail.PastCount = len(detail.PastShows)
	detail.UpcomingCount = len(detail.UpcomingShows)
	return detail, nil
}

// ArtistDetail assembles an artist page the same way VenueDetail does,
// enriched with the venue side of each booking.
func (s *QueryService) ArtistDetail(ctx context.Context, id uint64) (*ArtistDetail, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	detail := &ArtistDetail{Artist: *artist}
	for _, sh := range shows {
		view := ArtistShowView{
			VenueID:        sh.VenueID,
			VenueName:      sh.VenueName,
			VenueImageLink: sh.VenueImageLink,
			StartTime:      sh.StartTime.Format(startTimeLayout),
		}
		switch {
		case sh.StartTime.Before(now):
			detail.PastShows = append(detail.PastShows, view)
		case sh.StartTime.After(now):
			detail.UpcomingShows = append(detail.UpcomingShows, view)
		}
	}
	detail.PastCount = len(detail.PastShows)
	detail.UpcomingCount = len(detail.UpcomingShows)
	return detail, nil
}

// ListArtists returns ids and names of every artist.
func (s *QueryService) ListArtists(ctx context.Context) ([]repository.Ref, error) {
	return s.artists.List(ctx)
}

// ListShows returns the full shows index with formatted start times.
func (s *QueryService) ListShows(ctx context.Context) ([]ShowRow, error) {
	listings, err := s.shows.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]ShowRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, ShowRow{
			VenueID:         l.VenueID,
			VenueName:       l.VenueName,
			ArtistID:        l.ArtistID,
			ArtistName:      l.ArtistName,
			ArtistImageLink: l.ArtistImageLink,
			StartTime:       l.StartTime.Format(startTimeLayout),
		})
	}
	return rows, nil
}
