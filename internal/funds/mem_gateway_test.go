package funds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit(t *testing.T) {
	g := NewMemGateway()
	ctx := context.Background()

	balance, err := g.Deposit(ctx, "alice", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	balance, err = g.Deposit(ctx, "alice", 250)
	require.NoError(t, err)
	assert.Equal(t, int64(750), balance)

	_, err = g.Deposit(ctx, "alice", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestBalanceOfUnknownAccount(t *testing.T) {
	g := NewMemGateway()

	balance, err := g.BalanceOf(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestCollect(t *testing.T) {
	g := NewMemGateway()
	ctx := context.Background()

	_, err := g.Deposit(ctx, "alice", 1000)
	require.NoError(t, err)

	require.NoError(t, g.Collect(ctx, "alice", 600))

	balance, _ := g.BalanceOf(ctx, "alice")
	assert.Equal(t, int64(400), balance)

	pool, _ := g.PoolBalance(ctx)
	assert.Equal(t, int64(600), pool)
}

func TestCollectErrors(t *testing.T) {
	g := NewMemGateway()
	ctx := context.Background()

	// Collecting from an account that never deposited fails outright.
	err := g.Collect(ctx, "nobody", 100)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = g.Deposit(ctx, "alice", 50)
	require.NoError(t, err)

	err = g.Collect(ctx, "alice", 100)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	err = g.Collect(ctx, "alice", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPayout(t *testing.T) {
	g := NewMemGateway()
	ctx := context.Background()

	_, err := g.Deposit(ctx, "alice", 1000)
	require.NoError(t, err)
	require.NoError(t, g.Collect(ctx, "alice", 1000))

	// Payout creates the target account on first use.
	require.NoError(t, g.Payout(ctx, "bob", 400))

	balance, _ := g.BalanceOf(ctx, "bob")
	assert.Equal(t, int64(400), balance)

	pool, _ := g.PoolBalance(ctx)
	assert.Equal(t, int64(600), pool)
}

func TestPayoutInsufficientPool(t *testing.T) {
	g := NewMemGateway()

	err := g.Payout(context.Background(), "bob", 1)
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestZeroAmountTransfersAreNoOps(t *testing.T) {
	g := NewMemGateway()
	ctx := context.Background()

	require.NoError(t, g.Collect(ctx, "nobody", 0))
	require.NoError(t, g.Payout(ctx, "nobody", 0))

	pool, _ := g.PoolBalance(ctx)
	assert.Equal(t, int64(0), pool)
}
