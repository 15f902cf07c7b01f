package repo

import (
	"context"
	"errors"
	"fmt"

	"rideescrow/internal/escrow/domain"
	"rideescrow/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRideLedger stores rides in Postgres. Status updates are plain writes;
// transition rules live in the settlement engine.
type PgRideLedger struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRideLedger(pool *pgxpool.Pool, log *logger.Logger) *PgRideLedger {
	return &PgRideLedger{pool: pool, log: log}
}

func (l *PgRideLedger) Create(ctx context.Context, ride *domain.Ride) (int64, error) {
	var id int64
	err := l.pool.QueryRow(ctx,
		`INSERT INTO rides (rider_id, driver_id, destination_label, escrowed_amount, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		ride.RiderID, ride.DriverID, ride.DestinationLabel,
		ride.EscrowedAmount, ride.Status, ride.CreatedAt, ride.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert ride: %w", err)
	}
	return id, nil
}

func (l *PgRideLedger) Get(ctx context.Context, rideID int64) (*domain.Ride, error) {
	var ride domain.Ride
	err := l.pool.QueryRow(ctx,
		`SELECT id, rider_id, driver_id, destination_label, escrowed_amount, status, created_at, updated_at
		 FROM rides WHERE id = $1`, rideID,
	).Scan(
		&ride.ID, &ride.RiderID, &ride.DriverID, &ride.DestinationLabel,
		&ride.EscrowedAmount, &ride.Status, &ride.CreatedAt, &ride.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRideNotFound
		}
		return nil, fmt.Errorf("query ride: %w", err)
	}
	return &ride, nil
}

func (l *PgRideLedger) MarkCompleted(ctx context.Context, rideID int64) error {
	return l.setStatus(ctx, rideID, domain.StatusCompleted)
}

func (l *PgRideLedger) MarkCancelled(ctx context.Context, rideID int64) error {
	return l.setStatus(ctx, rideID, domain.StatusCancelled)
}

func (l *PgRideLedger) Reopen(ctx context.Context, rideID int64) error {
	return l.setStatus(ctx, rideID, domain.StatusBooked)
}

func (l *PgRideLedger) setStatus(ctx context.Context, rideID int64, status string) error {
	tag, err := l.pool.Exec(ctx,
		`UPDATE rides SET status = $2, updated_at = NOW() WHERE id = $1`,
		rideID, status,
	)
	if err != nil {
		return fmt.Errorf("update ride status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRideNotFound
	}
	return nil
}
