package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPayment(t *testing.T) {
	share, escrow := SplitPayment(1000)
	assert.Equal(t, int64(100), share)
	assert.Equal(t, int64(900), escrow)
}

func TestSplitPaymentFloorsShare(t *testing.T) {
	// 10% of 105 floors to 10; the escrow absorbs the remainder.
	share, escrow := SplitPayment(105)
	assert.Equal(t, int64(10), share)
	assert.Equal(t, int64(95), escrow)

	// Payments under 10 give the driver nothing up front.
	share, escrow = SplitPayment(5)
	assert.Equal(t, int64(0), share)
	assert.Equal(t, int64(5), escrow)
}

func TestSplitPaymentConservation(t *testing.T) {
	for _, payment := range []int64{0, 1, 9, 10, 11, 99, 100, 1000, 12345, 1 << 40} {
		share, escrow := SplitPayment(payment)
		assert.Equal(t, payment, share+escrow, "payment %d", payment)
		assert.GreaterOrEqual(t, share, int64(0))
		assert.GreaterOrEqual(t, escrow, int64(0))
	}
}

func TestCancellationSplit(t *testing.T) {
	fee, refund := CancellationSplit(900)
	assert.Equal(t, int64(45), fee)
	assert.Equal(t, int64(855), refund)
}

func TestCancellationSplitFloorsFee(t *testing.T) {
	// 5% of 19 floors to 0; the full escrow is refunded.
	fee, refund := CancellationSplit(19)
	assert.Equal(t, int64(0), fee)
	assert.Equal(t, int64(19), refund)
}

func TestCancellationSplitConservation(t *testing.T) {
	for _, escrowed := range []int64{0, 1, 19, 20, 21, 900, 999, 1 << 40} {
		fee, refund := CancellationSplit(escrowed)
		assert.Equal(t, escrowed, fee+refund, "escrowed %d", escrowed)
		assert.GreaterOrEqual(t, fee, int64(0))
		assert.GreaterOrEqual(t, refund, int64(0))
	}
}

func TestRideIsTerminal(t *testing.T) {
	ride := &Ride{Status: StatusBooked}
	assert.False(t, ride.IsTerminal())

	ride.Status = StatusCompleted
	assert.True(t, ride.IsTerminal())

	ride.Status = StatusCancelled
	assert.True(t, ride.IsTerminal())
}
