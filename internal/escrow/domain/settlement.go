package domain

// Fixed settlement percentages. The driver receives 10% of the payment
// up front; the remaining 90% is escrowed. Cancellation retains 5% of
// the escrowed amount as a fee.
const (
	driverSharePercent     = 10
	cancellationFeePercent = 5
)

// SplitPayment returns the immediate driver share and the escrowed
// remainder. Integer division floors the share, so the escrow always
// absorbs the rounding remainder and share+escrow == payment.
func SplitPayment(payment int64) (driverShare, escrow int64) {
	driverShare = payment * driverSharePercent / 100
	escrow = payment - driverShare
	return driverShare, escrow
}

// CancellationSplit returns the retained fee and the rider refund for an
// escrowed amount. fee+refund == escrowed.
func CancellationSplit(escrowed int64) (fee, refund int64) {
	fee = escrowed * cancellationFeePercent / 100
	refund = escrowed - fee
	return fee, refund
}
