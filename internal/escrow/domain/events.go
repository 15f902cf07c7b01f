package domain

import "time"

// Audit event types, observable and append-only. Nothing in the core
// consumes them back.
const (
	EventRideBooked    = "RIDE_BOOKED"
	EventRideCompleted = "RIDE_COMPLETED"
	EventRideCancelled = "RIDE_CANCELLED"
)

// RideBookedEvent carries the original fare alongside the split.
type RideBookedEvent struct {
	EventID     string    `json:"event_id"`
	RideID      int64     `json:"ride_id"`
	RiderID     string    `json:"rider_id"`
	DriverID    string    `json:"driver_id"`
	Destination string    `json:"destination"`
	Fare        int64     `json:"fare"`
	Timestamp   time.Time `json:"timestamp"`
}

type RideCompletedEvent struct {
	EventID   string    `json:"event_id"`
	RideID    int64     `json:"ride_id"`
	DriverID  string    `json:"driver_id"`
	RiderID   string    `json:"rider_id"`
	Timestamp time.Time `json:"timestamp"`
}

type RideCancelledEvent struct {
	EventID      string    `json:"event_id"`
	RideID       int64     `json:"ride_id"`
	DriverID     string    `json:"driver_id"`
	RiderID      string    `json:"rider_id"`
	RefundAmount int64     `json:"refund_amount"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
}
