package funds

import (
	"context"
	"errors"
	"fmt"

	"rideescrow/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgGateway is the Postgres-backed Gateway. Every transfer runs in a
// transaction with row locks so concurrent settlements cannot observe
// intermediate balances.
type PgGateway struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgGateway(pool *pgxpool.Pool, log *logger.Logger) *PgGateway {
	return &PgGateway{pool: pool, log: log}
}

func (g *PgGateway) Deposit(ctx context.Context, id string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := g.pool.QueryRow(ctx,
		`INSERT INTO accounts (participant_id, balance)
		 VALUES ($1, $2)
		 ON CONFLICT (participant_id)
		 DO UPDATE SET balance = accounts.balance + $2, updated_at = NOW()
		 RETURNING balance`,
		id, amount,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("deposit: %w", err)
	}
	return balance, nil
}

func (g *PgGateway) BalanceOf(ctx context.Context, id string) (int64, error) {
	var balance int64
	err := g.pool.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE participant_id = $1`, id,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("query balance: %w", err)
	}
	return balance, nil
}

func (g *PgGateway) Collect(ctx context.Context, from string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}

	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE participant_id = $1 FOR UPDATE`, from,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lock account: %w", err)
	}
	if balance < amount {
		return ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance - $2, updated_at = NOW() WHERE participant_id = $1`,
		from, amount,
	); err != nil {
		return fmt.Errorf("debit account: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE settlement_pool SET balance = balance + $1 WHERE id`, amount,
	); err != nil {
		return fmt.Errorf("credit pool: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit collect: %w", err)
	}
	return nil
}

func (g *PgGateway) Payout(ctx context.Context, to string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}

	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var poolBalance int64
	err = tx.QueryRow(ctx,
		`SELECT balance FROM settlement_pool WHERE id FOR UPDATE`,
	).Scan(&poolBalance)
	if err != nil {
		return fmt.Errorf("lock pool: %w", err)
	}
	if poolBalance < amount {
		return ErrInsufficientPool
	}

	if _, err := tx.Exec(ctx,
		`UPDATE settlement_pool SET balance = balance - $1 WHERE id`, amount,
	); err != nil {
		return fmt.Errorf("debit pool: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO accounts (participant_id, balance)
		 VALUES ($1, $2)
		 ON CONFLICT (participant_id)
		 DO UPDATE SET balance = accounts.balance + $2, updated_at = NOW()`,
		to, amount,
	); err != nil {
		return fmt.Errorf("credit account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit payout: %w", err)
	}
	return nil
}

func (g *PgGateway) PoolBalance(ctx context.Context) (int64, error) {
	var balance int64
	err := g.pool.QueryRow(ctx, `SELECT balance FROM settlement_pool WHERE id`).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("query pool balance: %w", err)
	}
	return balance, nil
}
