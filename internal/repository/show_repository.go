package repository

import (
	"context"
	"database/sql"
	"time"
)

// Show mirrors the 'shows' table. A show links one artist to one venue at a
// start time; both references are required and must resolve to existing rows,
// which the mutation layer verifies before any insert is attempted.
type Show struct {
	ID        uint64
	ArtistID  uint64
	VenueID   uint64
	StartTime time.Time
	CreatedAt time.Time
}

// VenueShow is a show seen from a venue's page, enriched with the artist side
// of the booking.
type VenueShow struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// ArtistShow is a show seen from an artist's page, enriched with the venue
// side of the booking.
type ArtistShow struct {
	VenueID        uint64
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
}

// ShowListing is the full join-derived view used by the shows index.
type ShowListing struct {
	VenueID         uint64
	VenueName       string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show inside a transaction and assigns the generated ID
// back to the struct. Referential checks against artists and venues happen in
// the mutation layer before this call; the foreign keys in the schema are the
// backstop.
func (r *ShowRepo) Create(ctx context.Context, s *Show) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const sel = `SELECT id, artist_id, venue_id, start_time, created_at FROM shows WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, s.ID).Scan(&s.ID, &s.ArtistID, &s.VenueID, &s.StartTime, &s.CreatedAt)
}

// ListByVenue returns every show booked at the venue together with the artist
// side of the booking, ordered by start time then id.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]VenueShow, error) {
	const q = `SELECT s.artist_id, a.name, a.image_link, s.start_time
               FROM shows s
               JOIN artists a ON a.id = s.artist_id
               WHERE s.venue_id = ?
               ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VenueShow
	for rows.Next() {
		var s VenueShow
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListByArtist returns every show booked by the artist together with the
// venue side of the booking, ordered by start time then id.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]ArtistShow, error) {
	const q = `SELECT s.venue_id, v.name, v.image_link, s.start_time
               FROM shows s
               JOIN venues v ON v.id = s.venue_id
               WHERE s.artist_id = ?
               ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ArtistShow
	for rows.Next() {
		var s ArtistShow
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListAll returns the join-derived view of every show, ordered by start time
// then id.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowListing, error) {
	const q = `SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
               FROM shows s
               JOIN venues v ON v.id = s.venue_id
               JOIN artists a ON a.id = s.artist_id
               ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShowListing
	for rows.Next() {
		var s ShowListing
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
