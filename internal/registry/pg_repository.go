package registry

import (
	"context"
	"errors"
	"fmt"

	"rideescrow/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository is the Postgres implementation of Repository.
type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

// Register sets the role flag inside a transaction so a concurrent
// registration of the same role cannot slip through.
func (r *PgRepository) Register(ctx context.Context, id string, role Role) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var isRider, isDriver bool
	err = tx.QueryRow(ctx,
		`SELECT is_rider, is_driver FROM participants WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&isRider, &isDriver)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx,
			`INSERT INTO participants (id, is_rider, is_driver) VALUES ($1, $2, $3)`,
			id, role == RoleRider, role == RoleDriver,
		)
		if err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}

	case err != nil:
		return fmt.Errorf("query participant: %w", err)

	default:
		if (role == RoleRider && isRider) || (role == RoleDriver && isDriver) {
			return ErrAlreadyRegistered
		}
		_, err = tx.Exec(ctx,
			`UPDATE participants
			 SET is_rider = is_rider OR $2,
			     is_driver = is_driver OR $3,
			     updated_at = NOW()
			 WHERE id = $1`,
			id, role == RoleRider, role == RoleDriver,
		)
		if err != nil {
			return fmt.Errorf("update participant: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}

// Find returns the participant by identity.
func (r *PgRepository) Find(ctx context.Context, id string) (*Participant, error) {
	p := &Participant{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, is_rider, is_driver, created_at, updated_at
		 FROM participants WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.IsRider, &p.IsDriver, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("query participant: %w", err)
	}
	return p, nil
}
