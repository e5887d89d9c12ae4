package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Venue mirrors the 'venues' table. Genres are decoded from their JSON column
// before the struct leaves this package.
type Venue struct {
	ID                 uint64
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
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// VenueUpcoming is a venue listing row annotated with the number of its shows
// starting after the instant the caller supplied.
type VenueUpcoming struct {
	ID            uint64
	Name          string
	City          string
	State         string
	UpcomingShows int
}

// VenueRepo manages persistence for venues.
type VenueRepo struct {
	db *sql.DB
}

func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, address, city, state, phone, website_link, facebook_link, image_link, genres, seeking_talent, seeking_description, created_at, updated_at`

func scanVenue(row interface{ Scan(...any) error }) (*Venue, error) {
	var v Venue
	var rawGenres string
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.Phone,
		&v.WebsiteLink, &v.FacebookLink, &v.ImageLink, &rawGenres,
		&v.SeekingTalent, &v.SeekingDescription, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if v.Genres, err = decodeGenres(rawGenres); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new venue inside a transaction and populates the generated
// ID and DB-default timestamps on the given struct.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) (err error) {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	const q = `INSERT INTO venues (name, address, city, state, phone, website_link, facebook_link, image_link, genres, seeking_talent, seeking_description)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, v.Name, v.Address, v.City, v.State, v.Phone,
		v.WebsiteLink, v.FacebookLink, v.ImageLink, genres, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	created, err := scanVenue(tx.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, v.ID))
	if err != nil {
		return err
	}
	*v = *created
	return nil
}

// GetByID retrieves a venue by its ID. It returns ErrVenueNotFound when the
// row is absent.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// Update replaces every mutable field of the venue identified by v.ID. The
// row is locked and verified inside the transaction so a missing record is
// reported as ErrVenueNotFound rather than as a silent no-op.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) (err error) {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? FOR UPDATE`, v.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}

	const q = `UPDATE venues
               SET name = ?, address = ?, city = ?, state = ?, phone = ?, website_link = ?, facebook_link = ?, image_link = ?, genres = ?, seeking_talent = ?, seeking_description = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q, v.Name, v.Address, v.City, v.State, v.Phone,
		v.WebsiteLink, v.FacebookLink, v.ImageLink, genres, v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
		return err
	}

	updated, err := scanVenue(tx.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, v.ID))
	if err != nil {
		return err
	}
	*v = *updated
	return nil
}

// Delete removes a venue and its dependent shows in one transaction. It
// returns ErrVenueNotFound when no venue row was deleted.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// ListWithUpcomingCounts returns every venue with the count of its shows
// starting strictly after now. The single query guarantees one consistent
// snapshot, and the ordering (state, city, name, id) keeps results
// deterministic for identical data sets.
func (r *VenueRepo) ListWithUpcomingCounts(ctx context.Context, now time.Time) ([]VenueUpcoming, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
                      COUNT(CASE WHEN s.start_time > ? THEN 1 END) AS upcoming
               FROM venues v
               LEFT JOIN shows s ON s.venue_id = v.id
               GROUP BY v.id, v.name, v.city, v.state
               ORDER BY v.state ASC, v.city ASC, v.name ASC, v.id ASC`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VenueUpcoming
	for rows.Next() {
		var v VenueUpcoming
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.UpcomingShows); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// SearchByName returns venues whose name contains the term as a
// case-insensitive literal substring. LIKE metacharacters in the term are
// escaped; an empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]Ref, error) {
	const q = `SELECT id, name FROM venues
               WHERE LOWER(name) LIKE ? ESCAPE '\\'
               ORDER BY name ASC, id ASC`
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	rows, err := r.db.QueryContext(ctx, q, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Ref
	for rows.Next() {
		var ref Ref
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		result = append(result, ref)
	}
	return result, rows.Err()
}
