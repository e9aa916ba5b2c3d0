package database

import "errors"

var (
	// ErrNotFound is returned when a room, booking or guest does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrRoomNotAvailable is returned when a booking targets a room that is
	// already taken.
	ErrRoomNotAvailable = errors.New("room is not available")

	// ErrConcurrentModification is returned when a versioned update loses
	// the optimistic concurrency race.
	ErrConcurrentModification = errors.New("booking was modified concurrently")
)
