package audit

import (
	"context"
	"fmt"

	"rideescrow/internal/shared/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository stores audit events in Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

func (r *PgRepository) Append(ctx context.Context, event *Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_events (event_id, event_type, ride_id, payload, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (event_id) DO NOTHING`,
		event.EventID, event.EventType, event.RideID, event.Payload, event.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (r *PgRepository) ListRecent(ctx context.Context, limit int) ([]*Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_id, event_type, ride_id, payload, recorded_at
		 FROM audit_events
		 ORDER BY id DESC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EventID, &e.EventType, &e.RideID, &e.Payload, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
