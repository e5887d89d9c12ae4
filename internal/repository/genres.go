package repository

import (
	"database/sql"
	"strings"

	json "github.com/goccy/go-json"
)

// Genre tags are stored as a JSON array in a TEXT column and are encoded and
// decoded only here at the storage boundary. Venue and artist rows share the
// same representation.

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeGenres(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

// escapeLike escapes LIKE metacharacters so that a user-supplied search term
// is matched as a literal substring rather than as a pattern.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// finishTx commits the transaction when *errp is nil and rolls it back
// otherwise. Use with defer so the transaction is released on every exit path.
func finishTx(tx *sql.Tx, errp *error) {
	if *errp != nil {
		_ = tx.Rollback()
		return
	}
	*errp = tx.Commit()
}
