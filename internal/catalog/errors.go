package catalog

import "errors"

var (
	// ErrNotDriver is returned when a non-driver tries to add a destination.
	ErrNotDriver = errors.New("caller is not a registered driver")

	// ErrInvalidFare is returned for fares <= 0.
	ErrInvalidFare = errors.New("fare must be positive")

	// ErrDestinationNotFound is returned for unknown destination ids.
	ErrDestinationNotFound = errors.New("destination not found")
)
