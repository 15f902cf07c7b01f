package domain

import "errors"

var (
	// ErrRideNotFound is returned for unknown ride ids.
	ErrRideNotFound = errors.New("ride not found")

	// ErrNotRegistered is returned when the caller lacks the required role.
	ErrNotRegistered = errors.New("caller not registered for required role")

	// ErrDestinationUnavailable is returned when the destination id does not
	// resolve to an available destination.
	ErrDestinationUnavailable = errors.New("destination unavailable")

	// ErrIncorrectPaymentAmount is returned when the payment does not equal
	// the fare exactly, for both over- and under-payment.
	ErrIncorrectPaymentAmount = errors.New("payment must equal fare exactly")

	// ErrUnauthorizedCaller is returned when the caller is not a party to
	// the ride (or, for cancellation, not the ride's exact rider).
	ErrUnauthorizedCaller = errors.New("caller not authorized for ride")

	// ErrAlreadyCompleted is returned for transitions on a completed ride.
	ErrAlreadyCompleted = errors.New("ride already completed")

	// ErrAlreadyCancelled is returned for transitions on a cancelled ride.
	ErrAlreadyCancelled = errors.New("ride already cancelled")

	// ErrTransferFailure is returned when a fund movement fails; the whole
	// operation is rolled back and may be retried.
	ErrTransferFailure = errors.New("fund transfer failed")

	// ErrInsufficientPoolBalance is returned when the pooled balance cannot
	// cover a cancellation refund.
	ErrInsufficientPoolBalance = errors.New("insufficient pool balance for refund")
)
