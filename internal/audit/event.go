package audit

import (
	"context"
	"encoding/json"
	"time"
)

// Event is one append-only audit record. RideID is nil for events that
// are not tied to a ride, such as destination additions.
type Event struct {
	ID         int64           `json:"id" db:"id"`
	EventID    string          `json:"event_id" db:"event_id"`
	EventType  string          `json:"event_type" db:"event_type"`
	RideID     *int64          `json:"ride_id,omitempty" db:"ride_id"`
	Payload    json.RawMessage `json:"payload" db:"payload"`
	RecordedAt time.Time       `json:"recorded_at" db:"recorded_at"`
}

// Repository appends and reads audit events. Appending a duplicate
// event id is a no-op so redelivered messages never produce a second
// record.
type Repository interface {
	Append(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, limit int) ([]*Event, error)
}
