package funds

import (
	"context"
	"sync"
)

// MemGateway is the in-memory Gateway used in tests and as the reference
// implementation of the transfer primitive.
type MemGateway struct {
	mu       sync.Mutex
	accounts map[string]int64
	pool     int64
}

func NewMemGateway() *MemGateway {
	return &MemGateway{accounts: make(map[string]int64)}
}

func (g *MemGateway) Deposit(ctx context.Context, id string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.accounts[id] += amount
	return g.accounts[id], nil
}

func (g *MemGateway) BalanceOf(ctx context.Context, id string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accounts[id], nil
}

func (g *MemGateway) Collect(ctx context.Context, from string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	balance, ok := g.accounts[from]
	if !ok {
		return ErrAccountNotFound
	}
	if balance < amount {
		return ErrInsufficientFunds
	}
	g.accounts[from] = balance - amount
	g.pool += amount
	return nil
}

func (g *MemGateway) Payout(ctx context.Context, to string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pool < amount {
		return ErrInsufficientPool
	}
	g.pool -= amount
	g.accounts[to] += amount
	return nil
}

func (g *MemGateway) PoolBalance(ctx context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pool, nil
}
