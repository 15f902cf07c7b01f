package out

import (
	"context"

	"rideescrow/internal/catalog"
)

// ParticipantRegistry is the engine's view of role membership.
type ParticipantRegistry interface {
	IsRider(ctx context.Context, id string) (bool, error)
	IsDriver(ctx context.Context, id string) (bool, error)
}

// FareCatalog is the engine's view of the destination catalog.
type FareCatalog interface {
	GetDestination(ctx context.Context, id int64) (*catalog.Destination, error)
}
