package in

import "context"

// BookRideInput books a ride to a catalog destination, paying the fare
// exactly. The driver is the destination's owner. Amounts are base
// currency units.
type BookRideInput struct {
	RiderID       string `json:"rider_id"`
	DestinationID int64  `json:"destination_id"`
	PaymentAmount int64  `json:"payment_amount"`
}

type BookRideOutput struct {
	RideID           int64  `json:"ride_id"`
	DestinationLabel string `json:"destination_label"`
	DriverShare      int64  `json:"driver_share"`
	EscrowedAmount   int64  `json:"escrowed_amount"`
	Status           string `json:"status"`
}

type BookRideUseCase interface {
	BookRide(ctx context.Context, input BookRideInput) (*BookRideOutput, error)
}
