package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gigbook/gigbook/internal/repository"
)

// VenueInput carries the validated field set for creating or fully replacing
// a venue.
type VenueInput struct {
	Name               string
	Address            string
	City               string
	State              string
	Phone              string
	WebsiteLink        string
	FacebookLink       string
	ImageLink          string
	Genres             []string
	SeekingTalent      bool
	SeekingDescription string
}

// ArtistInput carries the validated field set for creating or fully replacing
// an artist.
type ArtistInput struct {
	Name               string
	City               string
	State              string
	Phone              string
	WebsiteLink        string
	FacebookLink       string
	ImageLink          string
	Genres             []string
	SeekingVenue       bool
	SeekingDescription string
}

// ShowInput carries the field set for booking a show.
type ShowInput struct {
	ArtistID  uint64
	VenueID   uint64
	StartTime time.Time
}

// MutationService owns every write operation. Each operation validates
// first (no storage access on failure), then persists inside a transaction
// owned by the store, and wraps any storage failure in ErrPersistence after
// the store has rolled back.
type MutationService struct {
	venues  VenueStore
	artists ArtistStore
	shows   ShowStore
}

func NewMutationService(venues VenueStore, artists ArtistStore, shows ShowStore) *MutationService {
	return &MutationService{venues: venues, artists: artists, shows: shows}
}

func (in VenueInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(in.City) == "" {
		fields["city"] = "city is required"
	}
	if strings.TrimSpace(in.State) == "" {
		fields["state"] = "state is required"
	}
	if strings.TrimSpace(in.Address) == "" {
		fields["address"] = "address is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (in ArtistInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(in.City) == "" {
		fields["city"] = "city is required"
	}
	if strings.TrimSpace(in.State) == "" {
		fields["state"] = "state is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (in ShowInput) validate() error {
	fields := map[string]string{}
	if in.ArtistID == 0 {
		fields["artist_id"] = "artist id is required"
	}
	if in.VenueID == 0 {
		fields["venue_id"] = "venue id is required"
	}
	if in.StartTime.IsZero() {
		fields["start_time"] = "start time is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (in VenueInput) apply(v *repository.Venue) {
	v.Name = strings.TrimSpace(in.Name)
	v.Address = strings.TrimSpace(in.Address)
	v.City = strings.TrimSpace(in.City)
	v.State = strings.TrimSpace(in.State)
	v.Phone = strings.TrimSpace(in.Phone)
	v.WebsiteLink = strings.TrimSpace(in.WebsiteLink)
	v.FacebookLink = strings.TrimSpace(in.FacebookLink)
	v.ImageLink = strings.TrimSpace(in.ImageLink)
	v.Genres = in.Genres
	v.SeekingTalent = in.SeekingTalent
	v.SeekingDescription = strings.TrimSpace(in.SeekingDescription)
}

func (in ArtistInput) apply(a *repository.Artist) {
	a.Name = strings.TrimSpace(in.Name)
	a.City = strings.TrimSpace(in.City)
	a.State = strings.TrimSpace(in.State)
	a.Phone = strings.TrimSpace(in.Phone)
	a.WebsiteLink = strings.TrimSpace(in.WebsiteLink)
	a.FacebookLink = strings.TrimSpace(in.FacebookLink)
	a.ImageLink = strings.TrimSpace(in.ImageLink)
	a.Genres = in.Genres
	a.SeekingVenue = in.SeekingVenue
	a.SeekingDescription = strings.TrimSpace(in.SeekingDescription)
}

// CreateVenue validates the input and inserts a new venue.
func (m *MutationService) CreateVenue(ctx context.Context, in VenueInput) (*repository.Venue, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var v repository.Venue
	in.apply(&v)
	if err := m.venues.Create(ctx, &v); err != nil {
		return nil, persistence("create venue", err)
	}
	return &v, nil
}

// UpdateVenue fully replaces the mutable fields of an existing venue. A
// missing venue is reported before any write is attempted.
func (m *MutationService) UpdateVenue(ctx context.Context, id uint64, in VenueInput) (*repository.Venue, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	v, err := m.venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, err
		}
		return nil, persistence("load venue", err)
	}
	in.apply(v)
	if err := m.venues.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, err
		}
		return nil, persistence("update venue", err)
	}
	return v, nil
}

// DeleteVenue removes a venue and, by policy, its dependent shows in the same
// transaction. It returns the deleted venue's name for the user-facing
// message and fails with ErrVenueNotFound before any mutation when the id
// does not resolve.
func (m *MutationService) DeleteVenue(ctx context.Context, id uint64) (string, error) {
	v, err := m.venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return "", err
		}
		return "", persistence("load venue", err)
	}
	if err := m.venues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return "", err
		}
		return v.Name, persistence("delete venue", err)
	}
	return v.Name, nil
}

// CreateArtist validates the input and inserts a new artist.
func (m *MutationService) CreateArtist(ctx context.Context, in ArtistInput) (*repository.Artist, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var a repository.Artist
	in.apply(&a)
	if err := m.artists.Create(ctx, &a); err != nil {
		return nil, persistence("create artist", err)
	}
	return &a, nil
}

// UpdateArtist fully replaces the mutable fields of an existing artist.
func (m *MutationService) UpdateArtist(ctx context.Context, id uint64, in ArtistInput) (*repository.Artist, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	a, err := m.artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return nil, err
		}
		return nil, persistence("load artist", err)
	}
	in.apply(a)
	if err := m.artists.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return nil, err
		}
		return nil, persistence("update artist", err)
	}
	return a, nil
}

// DeleteArtist removes an artist and its dependent shows, mirroring
// DeleteVenue.
func (m *MutationService) DeleteArtist(ctx context.Context, id uint64) (string, error) {
	a, err := m.artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return "", err
		}
		return "", persistence("load artist", err)
	}
	if err := m.artists.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return "", err
		}
		return a.Name, persistence("delete artist", err)
	}
	return a.Name, nil
}

// CreateShow books a show. Both referenced ids are resolved before the insert
// is attempted; a missing artist or venue fails fast with the entity's
// NotFound sentinel and no show row is written.
func (m *MutationService) CreateShow(ctx context.Context, in ShowInput) (*repository.Show, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := m.artists.GetByID(ctx, in.ArtistID); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return nil, err
		}
		return nil, persistence("resolve artist", err)
	}
	if _, err := m.venues.GetByID(ctx, in.VenueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, err
		}
		return nil, persistence("resolve venue", err)
	}

	show := repository.Show{
		ArtistID:  in.ArtistID,
		VenueID:   in.VenueID,
		StartTime: in.StartTime,
	}
	if err := m.shows.Create(ctx, &show); err != nil {
		return nil, persistence("create show", err)
	}
	return &show, nil
}
