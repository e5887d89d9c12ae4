// Package repository contains the data access layer. Each repository owns the
// SQL for one table and reports failures through the sentinel errors defined
// here so that callers can distinguish a missing record from a storage fault
// without inspecting driver error strings.
package repository

import "errors"

// ErrVenueNotFound indicates the requested venue row does not exist.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound indicates the requested artist row does not exist.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound indicates the requested show row does not exist.
var ErrShowNotFound = errors.New("show not found")
