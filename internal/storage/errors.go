// Package storage holds errors shared by race store implementations.
package storage

import "errors"

var (
	// ErrNotFound is returned when a requested race does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRatBusy is returned when a rat already occupies another race.
	ErrRatBusy = errors.New("rat is already racing")

	// ErrRaceClosed is returned when an entry targets a race that no longer accepts entries.
	ErrRaceClosed = errors.New("race does not accept entries")

	// ErrDuplicateEntry is returned when a racer or rat already holds a different slot in the race.
	ErrDuplicateEntry = errors.New("duplicate entry")
)
