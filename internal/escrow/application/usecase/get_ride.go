package usecase

import (
	"context"

	"rideescrow/internal/escrow/application/ports/in"
	"rideescrow/internal/escrow/domain"
)

// GetRide returns the ride record to its rider or driver.
func (e *SettlementEngine) GetRide(ctx context.Context, input in.GetRideInput) (*in.GetRideOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ride, err := e.ledger.Get(ctx, input.RideID)
	if err != nil {
		return nil, err
	}

	if input.CallerID != ride.RiderID && input.CallerID != ride.DriverID {
		return nil, domain.ErrUnauthorizedCaller
	}

	return &in.GetRideOutput{
		RideID:           ride.ID,
		RiderID:          ride.RiderID,
		DriverID:         ride.DriverID,
		DestinationLabel: ride.DestinationLabel,
		EscrowedAmount:   ride.EscrowedAmount,
		Status:           ride.Status,
	}, nil
}
