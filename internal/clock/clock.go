// Package clock provides an injectable time source so that code which
// classifies shows as past or upcoming can be tested against a fixed instant.
package clock

import "time"

// Clock yields the current instant.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock in UTC.
type Real struct{}

func NewReal() Real { return Real{} }

func (Real) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Intended for tests.
type Fixed struct {
	now time.Time
}

func NewFixed(now time.Time) Fixed { return Fixed{now: now} }

func (f Fixed) Now() time.Time { return f.now }
