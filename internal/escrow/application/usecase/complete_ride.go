package usecase

import (
	"context"
	"fmt"

	"rideescrow/internal/escrow/application/ports/in"
	"rideescrow/internal/escrow/application/ports/out"
	"rideescrow/internal/escrow/domain"
	"rideescrow/internal/shared/logger"
)

// CompleteRide settles the escrowed amount to the driver. Either party to
// the ride may complete it. The status flips to COMPLETED in the ledger
// before the payout; a failed payout reopens the ride for retry.
func (e *SettlementEngine) CompleteRide(ctx context.Context, input in.CompleteRideInput) (*in.CompleteRideOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ride, err := e.ledger.Get(ctx, input.RideID)
	if err != nil {
		return nil, err
	}

	if input.CallerID != ride.RiderID && input.CallerID != ride.DriverID {
		return nil, domain.ErrUnauthorizedCaller
	}

	switch ride.Status {
	case domain.StatusCompleted:
		return nil, domain.ErrAlreadyCompleted
	case domain.StatusCancelled:
		return nil, domain.ErrAlreadyCancelled
	}

	if err := e.ledger.MarkCompleted(ctx, input.RideID); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}

	if err := e.funds.Payout(ctx, ride.DriverID, ride.EscrowedAmount); err != nil {
		if rbErr := e.ledger.Reopen(ctx, input.RideID); rbErr != nil {
			e.log.Error(logger.Entry{
				Action:  "complete_ride_rollback_failed",
				Message: rbErr.Error(),
				RideID:  rideIDString(input.RideID),
				Error:   &logger.ErrObj{Msg: rbErr.Error()},
			})
		}
		return nil, fmt.Errorf("%w: escrow payout: %v", domain.ErrTransferFailure, err)
	}

	e.log.Info(logger.Entry{
		Action:  "ride_completed",
		Message: ride.DestinationLabel,
		RideID:  rideIDString(input.RideID),
		Additional: map[string]any{
			"driver_id": ride.DriverID,
			"payout":    ride.EscrowedAmount,
			"caller_id": input.CallerID,
		},
	})

	if e.publisher != nil {
		event := domain.RideCompletedEvent{
			EventID:   newEventID(),
			RideID:    input.RideID,
			DriverID:  ride.DriverID,
			RiderID:   ride.RiderID,
			Timestamp: e.now(),
		}
		if err := e.publisher.PublishRideCompleted(ctx, event); err != nil {
			e.log.Error(logger.Entry{
				Action:  "publish_ride_completed_failed",
				Message: err.Error(),
				RideID:  rideIDString(input.RideID),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}

	e.notify(ctx, ride.RiderID, out.RideNotification{
		Type:    "ride_completed",
		RideID:  input.RideID,
		Message: "Your ride is complete",
	})
	e.notify(ctx, ride.DriverID, out.RideNotification{
		Type:    "ride_completed",
		RideID:  input.RideID,
		Message: "Escrow released",
		Data: map[string]any{
			"payout": ride.EscrowedAmount,
		},
	})

	return &in.CompleteRideOutput{
		RideID:       input.RideID,
		Status:       domain.StatusCompleted,
		PayoutAmount: ride.EscrowedAmount,
	}, nil
}
