package out

import "context"

// FundGateway is the engine's view of the transfer primitive. Collect
// moves a booking payment from the rider's payable account into the
// pool; Payout drains the pool toward a payable account.
type FundGateway interface {
	Collect(ctx context.Context, from string, amount int64) error
	Payout(ctx context.Context, to string, amount int64) error
	PoolBalance(ctx context.Context) (int64, error)
}
