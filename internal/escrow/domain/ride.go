package domain

import "time"

// Ride statuses. BOOKED is the only non-terminal state; no transition
// ever leaves COMPLETED or CANCELLED.
const (
	StatusBooked    = "BOOKED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Ride is one booking with its escrowed remainder. Rider, driver,
// destination label and escrowed amount are fixed at creation; the label
// is a copy taken at booking time so later catalog edits cannot affect
// existing rides.
type Ride struct {
	ID               int64     `json:"id" db:"id"`
	RiderID          string    `json:"rider_id" db:"rider_id"`
	DriverID         string    `json:"driver_id" db:"driver_id"`
	DestinationLabel string    `json:"destination_label" db:"destination_label"`
	EscrowedAmount   int64     `json:"escrowed_amount" db:"escrowed_amount"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// IsTerminal reports whether the ride has reached a final status.
func (r *Ride) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}
