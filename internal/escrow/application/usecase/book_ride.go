package usecase

import (
	"context"
	"fmt"

	"rideescrow/internal/escrow/application/ports/in"
	"rideescrow/internal/escrow/application/ports/out"
	"rideescrow/internal/escrow/domain"
	"rideescrow/internal/shared/logger"
)

// BookRide validates the booking, pays the driver's immediate share and
// creates the ride holding the escrowed remainder. The driver transfer is
// attempted before the ride record exists; if it fails, the collected
// payment is returned to the rider and no record is created.
func (e *SettlementEngine) BookRide(ctx context.Context, input in.BookRideInput) (*in.BookRideOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	isRider, err := e.registry.IsRider(ctx, input.RiderID)
	if err != nil {
		return nil, fmt.Errorf("check rider role: %w", err)
	}
	if !isRider {
		return nil, fmt.Errorf("%w: rider", domain.ErrNotRegistered)
	}

	dest, err := e.catalog.GetDestination(ctx, input.DestinationID)
	if err != nil {
		return nil, domain.ErrDestinationUnavailable
	}
	if !dest.Available {
		return nil, domain.ErrDestinationUnavailable
	}

	if input.PaymentAmount != dest.Fare {
		return nil, fmt.Errorf("%w: fare %d, got %d",
			domain.ErrIncorrectPaymentAmount, dest.Fare, input.PaymentAmount)
	}

	driverShare, escrowAmount := domain.SplitPayment(input.PaymentAmount)

	// Pull the full payment into the pool, then pay the driver's share out.
	// Both must succeed before any ride record exists.
	if err := e.funds.Collect(ctx, input.RiderID, input.PaymentAmount); err != nil {
		return nil, fmt.Errorf("%w: collect payment: %v", domain.ErrTransferFailure, err)
	}
	if err := e.funds.Payout(ctx, dest.DriverID, driverShare); err != nil {
		if rbErr := e.funds.Payout(ctx, input.RiderID, input.PaymentAmount); rbErr != nil {
			e.log.Error(logger.Entry{
				Action:  "book_ride_rollback_failed",
				Message: rbErr.Error(),
				Error:   &logger.ErrObj{Msg: rbErr.Error()},
				Additional: map[string]any{
					"rider_id": input.RiderID,
					"amount":   input.PaymentAmount,
				},
			})
		}
		return nil, fmt.Errorf("%w: driver share: %v", domain.ErrTransferFailure, err)
	}

	now := e.now()
	ride := &domain.Ride{
		RiderID:          input.RiderID,
		DriverID:         dest.DriverID,
		DestinationLabel: dest.Location,
		EscrowedAmount:   escrowAmount,
		Status:           domain.StatusBooked,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	rideID, err := e.ledger.Create(ctx, ride)
	if err != nil {
		// Undo both transfers so a storage fault leaves no residue.
		if rbErr := e.funds.Collect(ctx, dest.DriverID, driverShare); rbErr == nil {
			_ = e.funds.Payout(ctx, input.RiderID, input.PaymentAmount)
		} else {
			e.log.Error(logger.Entry{
				Action:  "book_ride_rollback_failed",
				Message: rbErr.Error(),
				Error:   &logger.ErrObj{Msg: rbErr.Error()},
			})
		}
		return nil, fmt.Errorf("create ride: %w", err)
	}
	ride.ID = rideID

	e.log.Info(logger.Entry{
		Action:  "ride_booked",
		Message: dest.Location,
		RideID:  rideIDString(rideID),
		Additional: map[string]any{
			"rider_id":     input.RiderID,
			"driver_id":    dest.DriverID,
			"fare":         input.PaymentAmount,
			"driver_share": driverShare,
			"escrowed":     escrowAmount,
		},
	})

	if e.publisher != nil {
		event := domain.RideBookedEvent{
			EventID:     newEventID(),
			RideID:      rideID,
			RiderID:     input.RiderID,
			DriverID:    dest.DriverID,
			Destination: dest.Location,
			Fare:        input.PaymentAmount,
			Timestamp:   now,
		}
		if err := e.publisher.PublishRideBooked(ctx, event); err != nil {
			e.log.Error(logger.Entry{
				Action:  "publish_ride_booked_failed",
				Message: err.Error(),
				RideID:  rideIDString(rideID),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}

	e.notify(ctx, input.RiderID, out.RideNotification{
		Type:    "ride_booked",
		RideID:  rideID,
		Message: "Your ride has been booked",
		Data: map[string]any{
			"destination": dest.Location,
			"escrowed":    escrowAmount,
		},
	})
	e.notify(ctx, dest.DriverID, out.RideNotification{
		Type:    "ride_booked",
		RideID:  rideID,
		Message: "A rider has booked your destination",
		Data: map[string]any{
			"destination":  dest.Location,
			"driver_share": driverShare,
		},
	})

	return &in.BookRideOutput{
		RideID:           rideID,
		DestinationLabel: dest.Location,
		DriverShare:      driverShare,
		EscrowedAmount:   escrowAmount,
		Status:           domain.StatusBooked,
	}, nil
}
