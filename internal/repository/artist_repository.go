package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Artist mirrors the 'artists' table. Unlike venues, artists have no street
// address; otherwise the two records carry the same contact metadata and the
// same JSON-encoded genre column.
type Artist struct {
	ID                 uint64
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
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, website_link, facebook_link, image_link, genres, seeking_venue, seeking_description, created_at, updated_at`

func scanArtist(row interface{ Scan(...any) error }) (*Artist, error) {
	var a Artist
	var rawGenres string
	err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&a.WebsiteLink, &a.FacebookLink, &a.ImageLink, &rawGenres,
		&a.SeekingVenue, &a.SeekingDescription, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if a.Genres, err = decodeGenres(rawGenres); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new artist inside a transaction and populates the
// generated ID and DB-default timestamps on the given struct.
func (r *ArtistRepo) Create(ctx context.Context, a *Artist) (err error) {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	const q = `INSERT INTO artists (name, city, state, phone, website_link, facebook_link, image_link, genres, seeking_venue, seeking_description)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone,
		a.WebsiteLink, a.FacebookLink, a.ImageLink, genres, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	created, err := scanArtist(tx.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, a.ID))
	if err != nil {
		return err
	}
	*a = *created
	return nil
}

// GetByID retrieves an artist by its ID. It returns ErrArtistNotFound when
// the row is absent.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update replaces every mutable field of the artist identified by a.ID,
// reporting ErrArtistNotFound when the row does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *Artist) (err error) {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? FOR UPDATE`, a.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}

	const q = `UPDATE artists
               SET name = ?, city = ?, state = ?, phone = ?, website_link = ?, facebook_link = ?, image_link = ?, genres = ?, seeking_venue = ?, seeking_description = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone,
		a.WebsiteLink, a.FacebookLink, a.ImageLink, genres, a.SeekingVenue, a.SeekingDescription, a.ID); err != nil {
		return err
	}

	updated, err := scanArtist(tx.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, a.ID))
	if err != nil {
		return err
	}
	*a = *updated
	return nil
}

// Delete removes an artist and its dependent shows in one transaction. It
// returns ErrArtistNotFound when no artist row was deleted.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// List returns ids and names of all artists ordered by name then id.
func (r *ArtistRepo) List(ctx context.Context) ([]Ref, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY name ASC, id ASC`)
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

// SearchByName returns artists whose name contains the term as a
// case-insensitive literal substring, with LIKE metacharacters escaped.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]Ref, error) {
	const q = `SELECT id, name FROM artists
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
