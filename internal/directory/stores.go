package directory

import (
	"context"
	"time"

	"github.com/gigbook/gigbook/internal/repository"
)

// The store interfaces mirror the repository types one to one. Services
// depend on them rather than on *sql.DB so tests can substitute in-memory
// fakes.

type VenueStore interface {
	Create(ctx context.Context, v *repository.Venue) error
	GetByID(ctx context.Context, id uint64) (*repository.Venue, error)
	Update(ctx context.Context, v *repository.Venue) error
	Delete(ctx context.Context, id uint64) error
	ListWithUpcomingCounts(ctx context.Context, now time.Time) ([]repository.VenueUpcoming, error)
	SearchByName(ctx context.Context, term string) ([]repository.Ref, error)
}

type ArtistStore interface {
	Create(ctx context.Context, a *repository.Artist) error
	GetByID(ctx context.Context, id uint64) (*repository.Artist, error)
	Update(ctx context.Context, a *repository.Artist) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]repository.Ref, error)
	SearchByName(ctx context.Context, term string) ([]repository.Ref, error)
}

type ShowStore interface {
	Create(ctx context.Context, s *repository.Show) error
	ListByVenue(ctx context.Context, venueID uint64) ([]repository.VenueShow, error)
	ListByArtist(ctx context.Context, artistID uint64) ([]repository.ArtistShow, error)
	ListAll(ctx context.Context) ([]repository.ShowListing, error)
}

var (
	_ VenueStore  = (*repository.VenueRepo)(nil)
	_ ArtistStore = (*repository.ArtistRepo)(nil)
	_ ShowStore   = (*repository.ShowRepo)(nil)
)
