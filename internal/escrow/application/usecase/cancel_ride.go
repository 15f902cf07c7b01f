package usecase

import (
	"context"
	"fmt"

	"rideescrow/internal/escrow/application/ports/in"
	"rideescrow/internal/escrow/application/ports/out"
	"rideescrow/internal/escrow/domain"
	"rideescrow/internal/shared/logger"
)

// CancelRide refunds the escrow to the rider minus the cancellation fee,
// which stays in the pool. Only the ride's own rider may cancel. The
// refund is checked against the pooled balance, not a per-ride reserve,
// so earlier insolvency surfaces here as a rejected cancellation.
func (e *SettlementEngine) CancelRide(ctx context.Context, input in.CancelRideInput) (*in.CancelRideOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	isRider, err := e.registry.IsRider(ctx, input.CallerID)
	if err != nil {
		return nil, fmt.Errorf("check rider role: %w", err)
	}
	if !isRider {
		return nil, fmt.Errorf("%w: rider", domain.ErrNotRegistered)
	}

	ride, err := e.ledger.Get(ctx, input.RideID)
	if err != nil {
		return nil, err
	}

	if input.CallerID != ride.RiderID {
		return nil, domain.ErrUnauthorizedCaller
	}

	switch ride.Status {
	case domain.StatusCompleted:
		return nil, domain.ErrAlreadyCompleted
	case domain.StatusCancelled:
		return nil, domain.ErrAlreadyCancelled
	}

	fee, refund := domain.CancellationSplit(ride.EscrowedAmount)

	pool, err := e.funds.PoolBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("pool balance: %w", err)
	}
	if pool < refund {
		return nil, domain.ErrInsufficientPoolBalance
	}

	if err := e.ledger.MarkCancelled(ctx, input.RideID); err != nil {
		return nil, fmt.Errorf("mark cancelled: %w", err)
	}

	if err := e.funds.Payout(ctx, ride.RiderID, refund); err != nil {
		if rbErr := e.ledger.Reopen(ctx, input.RideID); rbErr != nil {
			e.log.Error(logger.Entry{
				Action:  "cancel_ride_rollback_failed",
				Message: rbErr.Error(),
				RideID:  rideIDString(input.RideID),
				Error:   &logger.ErrObj{Msg: rbErr.Error()},
			})
		}
		return nil, fmt.Errorf("%w: escrow refund: %v", domain.ErrTransferFailure, err)
	}

	e.log.Info(logger.Entry{
		Action:  "ride_cancelled",
		Message: ride.DestinationLabel,
		RideID:  rideIDString(input.RideID),
		Additional: map[string]any{
			"rider_id": ride.RiderID,
			"refund":   refund,
			"fee":      fee,
			"reason":   input.Reason,
		},
	})

	if e.publisher != nil {
		event := domain.RideCancelledEvent{
			EventID:      newEventID(),
			RideID:       input.RideID,
			DriverID:     ride.DriverID,
			RiderID:      ride.RiderID,
			RefundAmount: refund,
			Reason:       input.Reason,
			Timestamp:    e.now(),
		}
		if err := e.publisher.PublishRideCancelled(ctx, event); err != nil {
			e.log.Error(logger.Entry{
				Action:  "publish_ride_cancelled_failed",
				Message: err.Error(),
				RideID:  rideIDString(input.RideID),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}

	e.notify(ctx, ride.RiderID, out.RideNotification{
		Type:    "ride_cancelled",
		RideID:  input.RideID,
		Message: "Your ride was cancelled",
		Data: map[string]any{
			"refund": refund,
			"fee":    fee,
		},
	})
	e.notify(ctx, ride.DriverID, out.RideNotification{
		Type:    "ride_cancelled",
		RideID:  input.RideID,
		Message: "The rider cancelled the ride",
	})

	return &in.CancelRideOutput{
		RideID:       input.RideID,
		Status:       domain.StatusCancelled,
		RefundAmount: refund,
		RetainedFee:  fee,
	}, nil
}
