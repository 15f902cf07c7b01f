package in

import "context"

// CancelRideInput lets the ride's rider cancel a booked ride. The escrow
// is refunded minus the retained fee.
type CancelRideInput struct {
	RideID   int64  `json:"ride_id"`
	CallerID string `json:"caller_id"`
	Reason   string `json:"reason"`
}

type CancelRideOutput struct {
	RideID       int64  `json:"ride_id"`
	Status       string `json:"status"`
	RefundAmount int64  `json:"refund_amount"`
	RetainedFee  int64  `json:"retained_fee"`
}

type CancelRideUseCase interface {
	CancelRide(ctx context.Context, input CancelRideInput) (*CancelRideOutput, error)
}
