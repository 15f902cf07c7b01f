package catalog

import (
	"context"
	"errors"
	"fmt"

	"rideescrow/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository is the Postgres implementation of Repository. Ids come from
// an identity column starting at 0.
type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

func (r *PgRepository) Create(ctx context.Context, d *Destination) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO destinations (driver_id, location, fare, available, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		d.DriverID, d.Location, d.Fare, d.Available, d.CreatedAt,
	).Scan(&id)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_create_destination_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return 0, fmt.Errorf("insert destination: %w", err)
	}
	return id, nil
}

func (r *PgRepository) Find(ctx context.Context, id int64) (*Destination, error) {
	d := &Destination{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, driver_id, location, fare, available, created_at
		 FROM destinations WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.DriverID, &d.Location, &d.Fare, &d.Available, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDestinationNotFound
		}
		return nil, fmt.Errorf("query destination: %w", err)
	}
	return d, nil
}
