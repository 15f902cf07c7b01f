package registry

import "errors"

var (
	// ErrAlreadyRegistered is returned when the identity already holds the role.
	ErrAlreadyRegistered = errors.New("identity already registered for role")

	// ErrNotRegistered is returned when an operation requires a role the
	// identity does not hold.
	ErrNotRegistered = errors.New("identity not registered for role")

	// ErrUnknownRole is returned for roles other than RIDER and DRIVER.
	ErrUnknownRole = errors.New("unknown role")

	// ErrParticipantNotFound is returned when no registration exists at all.
	ErrParticipantNotFound = errors.New("participant not found")
)
