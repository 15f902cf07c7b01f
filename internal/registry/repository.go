package registry

import "context"

// Repository stores role memberships keyed by identity.
type Repository interface {
	// Register sets the role flag for the identity, creating the participant
	// on first registration. Returns ErrAlreadyRegistered when the flag is
	// already set.
	Register(ctx context.Context, id string, role Role) error

	// Find returns the participant or ErrParticipantNotFound.
	Find(ctx context.Context, id string) (*Participant, error)
}
