package out

import (
	"context"

	"rideescrow/internal/escrow/domain"
)

// RideLedger is the pure state container over ride records, keyed by
// monotonically increasing id starting at 0. Mark* and Reopen mutate
// status only; business rules are validated by the settlement engine
// before calling them.
type RideLedger interface {
	// Create assigns the next id and stores the ride with status BOOKED.
	Create(ctx context.Context, ride *domain.Ride) (int64, error)

	// Get returns the ride or domain.ErrRideNotFound.
	Get(ctx context.Context, rideID int64) (*domain.Ride, error)

	// MarkCompleted sets the status to COMPLETED.
	MarkCompleted(ctx context.Context, rideID int64) error

	// MarkCancelled sets the status to CANCELLED.
	MarkCancelled(ctx context.Context, rideID int64) error

	// Reopen restores BOOKED after a failed settlement transfer.
	Reopen(ctx context.Context, rideID int64) error
}
