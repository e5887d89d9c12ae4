package database

import (
	"context"
	"database/sql"
	"fmt"
)

const createVenuesSQL = `
CREATE TABLE IF NOT EXISTS venues (
    id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name                VARCHAR(120)  NOT NULL,
    address             VARCHAR(255)  NOT NULL,
    city                VARCHAR(120)  NOT NULL,
    state               VARCHAR(32)   NOT NULL,
    phone               VARCHAR(32)   NOT NULL DEFAULT '',
    website_link        VARCHAR(500)  NOT NULL DEFAULT '',
    facebook_link       VARCHAR(500)  NOT NULL DEFAULT '',
    image_link          VARCHAR(500)  NOT NULL DEFAULT '',
    genres              TEXT          NOT NULL,
    seeking_talent      TINYINT(1)    NOT NULL DEFAULT 0,
    seeking_description TEXT          NOT NULL,
    created_at          TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at          TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    INDEX idx_venues_city_state (state, city)
) ENGINE=InnoDB;`

const createArtistsSQL = `
CREATE TABLE IF NOT EXISTS artists (
    id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name                VARCHAR(120)  NOT NULL,
    city                VARCHAR(120)  NOT NULL,
    state               VARCHAR(32)   NOT NULL,
    phone               VARCHAR(32)   NOT NULL DEFAULT '',
    website_link        VARCHAR(500)  NOT NULL DEFAULT '',
    facebook_link       VARCHAR(500)  NOT NULL DEFAULT '',
    image_link          VARCHAR(500)  NOT NULL DEFAULT '',
    genres              TEXT          NOT NULL,
    seeking_venue       TINYINT(1)    NOT NULL DEFAULT 0,
    seeking_description TEXT          NOT NULL,
    created_at          TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at          TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB;`

const createShowsSQL = `
CREATE TABLE IF NOT EXISTS shows (
    id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    artist_id  BIGINT UNSIGNED NOT NULL,
    venue_id   BIGINT UNSIGNED NOT NULL,
    start_time DATETIME        NOT NULL,
    created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_shows_venue_start (venue_id, start_time),
    INDEX idx_shows_artist_start (artist_id, start_time),
    CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id),
    CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)
) ENGINE=InnoDB;`

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    email         VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    role          ENUM('MEMBER','ADMIN') NOT NULL DEFAULT 'MEMBER',
    is_active     TINYINT(1)   NOT NULL DEFAULT 1,
    created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB;`

const createRefreshTokensSQL = `
CREATE TABLE IF NOT EXISTS refresh_tokens (
    id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    user_id    BIGINT UNSIGNED NOT NULL,
    token_hash CHAR(64)  NOT NULL UNIQUE,
    expires_at DATETIME  NOT NULL,
    revoked_at DATETIME  NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users (id)
) ENGINE=InnoDB;`

// Migrate creates the schema when it does not exist yet. Statements are
// idempotent so the server can run them on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"venues", createVenuesSQL},
		{"artists", createArtistsSQL},
		{"shows", createShowsSQL},
		{"users", createUsersSQL},
		{"refresh_tokens", createRefreshTokensSQL},
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
	}
	return nil
}
