package directory

import (
	"context"
	"time"

	"github.com/gigbook/gigbook/internal/repository"
)

// Hand-rolled in-memory stores. Each fake can be primed with rows and with a
// failure that every method returns, which keeps the error-path tests short.

type fakeVenueStore struct {
	venues   map[uint64]*repository.Venue
	listRows []repository.VenueUpcoming
	searched string
	nextID   uint64
	deleted  []uint64
	fail     error
}

func newFakeVenueStore() *fakeVenueStore {
	return &fakeVenueStore{venues: map[uint64]*repository.Venue{}}
}

func (f *fakeVenueStore) add(v repository.Venue) *repository.Venue {
	f.venues[v.ID] = &v
	return &v
}

func (f *fakeVenueStore) Create(_ context.Context, v *repository.Venue) error {
	if f.fail != nil {
		return f.fail
	}
	f.nextID++
	v.ID = f.nextID
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f *fakeVenueStore) GetByID(_ context.Context, id uint64) (*repository.Venue, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenueStore) Update(_ context.Context, v *repository.Venue) error {
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.venues[v.ID]; !ok {
		return repository.ErrVenueNotFound
	}
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f *fakeVenueStore) Delete(_ context.Context, id uint64) error {
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.venues[id]; !ok {
		return repository.ErrVenueNotFound
	}
	delete(f.venues, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVenueStore) ListWithUpcomingCounts(_ context.Context, _ time.Time) ([]repository.VenueUpcoming, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.listRows, nil
}

func (f *fakeVenueStore) SearchByName(_ context.Context, term string) ([]repository.Ref, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.searched = term
	var refs []repository.Ref
	for _, v := range f.venues {
		refs = append(refs, repository.Ref{ID: v.ID, Name: v.Name})
	}
	return refs, nil
}

type fakeArtistStore struct {
	artists  map[uint64]*repository.Artist
	searched string
	nextID   uint64
	deleted  []uint64
	fail     error
}

func newFakeArtistStore() *fakeArtistStore {
	return &fakeArtistStore{artists: map[uint64]*repository.Artist{}}
}

func (f *fakeArtistStore) add(a repository.Artist) *repository.Artist {
	f.artists[a.ID] = &a
	return &a
}

func (f *fakeArtistStore) Create(_ context.Context, a *repository.Artist) error {
	if f.fail != nil {
		return f.fail
	}
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.artists[a.ID] = &cp
	return nil
}

func (f *fakeArtistStore) GetByID(_ context.Context, id uint64) (*repository.Artist, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	a, ok := f.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArtistStore) Update(_ context.Context, a *repository.Artist) error {
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.artists[a.ID]; !ok {
		return repository.ErrArtistNotFound
	}
	cp := *a
	f.artists[a.ID] = &cp
	return nil
}

func (f *fakeArtistStore) Delete(_ context.Context, id uint64) error {
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.artists[id]; !ok {
		return repository.ErrArtistNotFound
	}
	delete(f.artists, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeArtistStore) List(_ context.Context) ([]repository.Ref, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	var refs []repository.Ref
	for _, a := range f.artists {
		refs = append(refs, repository.Ref{ID: a.ID, Name: a.Name})
	}
	return refs, nil
}

func (f *fakeArtistStore) SearchByName(_ context.Context, term string) ([]repository.Ref, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.searched = term
	var refs []repository.Ref
	for _, a := range f.artists {
		refs = append(refs, repository.Ref{ID: a.ID, Name: a.Name})
	}
	return refs, nil
}

type fakeShowStore struct {
	byVenue  map[uint64][]repository.VenueShow
	byArtist map[uint64][]repository.ArtistShow
	listings []repository.ShowListing
	created  []repository.Show
	nextID   uint64
	fail     error
}

func newFakeShowStore() *fakeShowStore {
	return &fakeShowStore{
		byVenue:  map[uint64][]repository.VenueShow{},
		byArtist: map[uint64][]repository.ArtistShow{},
	}
}

func (f *fakeShowStore) Create(_ context.Context, s *repository.Show) error {
	if f.fail != nil {
		return f.fail
	}
	f.nextID++
	s.ID = f.nextID
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeShowStore) ListByVenue(_ context.Context, venueID uint64) ([]repository.VenueShow, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.byVenue[venueID], nil
}

func (f *fakeShowStore) ListByArtist(_ context.Context, artistID uint64) ([]repository.ArtistShow, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.byArtist[artistID], nil
}

func (f *fakeShowStore) ListAll(_ context.Context) ([]repository.ShowListing, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.listings, nil
}
