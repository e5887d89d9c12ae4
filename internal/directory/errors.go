// Package directory implements the read and write operations behind the
// booking directory pages: grouped venue listings, name searches, detail
// assembly with past/upcoming show partitioning, and the create/update/delete
// lifecycle for venues, artists and shows.
package directory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPersistence wraps any storage failure crossing the mutation boundary.
// The original driver error stays in the chain for logging; handlers show the
// user a single generic failure message and a 500.
var ErrPersistence = errors.New("operation could not complete")

// ValidationError reports per-field problems with a submitted record. It is
// returned before any storage access so a failed validation never opens a
// transaction.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
