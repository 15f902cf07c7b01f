package funds

import (
	"context"
	"errors"
)

var (
	// ErrAccountNotFound is returned when collecting from an unknown account.
	ErrAccountNotFound = errors.New("payable account not found")

	// ErrInsufficientFunds is returned when an account cannot cover a debit.
	ErrInsufficientFunds = errors.New("insufficient account balance")

	// ErrInsufficientPool is returned when the pool cannot cover a payout.
	ErrInsufficientPool = errors.New("insufficient pool balance")

	// ErrInvalidAmount is returned for negative transfer amounts.
	ErrInvalidAmount = errors.New("transfer amount must not be negative")
)

// Gateway moves base currency units between payable accounts and the
// single pooled balance owned by the settlement engine. Amounts are
// non-negative integers; zero-amount transfers are no-ops.
type Gateway interface {
	// Deposit credits a payable account, creating it on first use.
	Deposit(ctx context.Context, id string, amount int64) (int64, error)

	// BalanceOf returns an account balance (0 for unknown accounts).
	BalanceOf(ctx context.Context, id string) (int64, error)

	// Collect debits a payable account into the pool.
	Collect(ctx context.Context, from string, amount int64) error

	// Payout debits the pool and credits a payable account,
	// creating it on first use.
	Payout(ctx context.Context, to string, amount int64) error

	// PoolBalance returns the pooled balance shared across all rides.
	PoolBalance(ctx context.Context) (int64, error)
}
