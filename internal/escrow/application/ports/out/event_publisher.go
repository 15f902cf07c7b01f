package out

import (
	"context"

	"rideescrow/internal/escrow/domain"
)

// EventPublisher emits settlement audit events. Publishing is best-effort:
// the engine logs failures but never rolls a committed operation back
// because of them.
type EventPublisher interface {
	PublishRideBooked(ctx context.Context, event domain.RideBookedEvent) error
	PublishRideCompleted(ctx context.Context, event domain.RideCompletedEvent) error
	PublishRideCancelled(ctx context.Context, event domain.RideCancelledEvent) error
}
