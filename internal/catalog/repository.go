package catalog

import "context"

// Repository stores destinations keyed by sequential id (starting at 0).
type Repository interface {
	// Create persists a destination and returns its assigned id.
	Create(ctx context.Context, d *Destination) (int64, error)

	// Find returns the destination or ErrDestinationNotFound.
	Find(ctx context.Context, id int64) (*Destination, error)
}
