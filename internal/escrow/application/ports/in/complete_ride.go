package in

import "context"

// CompleteRideInput lets either party to the ride settle the escrow to
// the driver. CallerID is the authenticated identity, never inferred.
type CompleteRideInput struct {
	RideID   int64  `json:"ride_id"`
	CallerID string `json:"caller_id"`
}

type CompleteRideOutput struct {
	RideID       int64  `json:"ride_id"`
	Status       string `json:"status"`
	PayoutAmount int64  `json:"payout_amount"`
}

type CompleteRideUseCase interface {
	CompleteRide(ctx context.Context, input CompleteRideInput) (*CompleteRideOutput, error)
}
