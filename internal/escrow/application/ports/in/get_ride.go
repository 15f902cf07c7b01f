package in

import "context"

// GetRideInput reads a single ride. Any party to the ride may read it.
type GetRideInput struct {
	RideID   int64  `json:"ride_id"`
	CallerID string `json:"caller_id"`
}

type GetRideOutput struct {
	RideID           int64  `json:"ride_id"`
	RiderID          string `json:"rider_id"`
	DriverID         string `json:"driver_id"`
	DestinationLabel string `json:"destination"`
	EscrowedAmount   int64  `json:"escrowed_amount"`
	Status           string `json:"status"`
}

type GetRideUseCase interface {
	GetRide(ctx context.Context, input GetRideInput) (*GetRideOutput, error)
}
