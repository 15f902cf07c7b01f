package out

import "context"

// RideNotification is a real-time push to a connected participant.
type RideNotification struct {
	Type    string         `json:"type"`
	RideID  int64          `json:"ride_id"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// RideNotifier delivers notifications to a participant's live connections.
type RideNotifier interface {
	NotifyParticipant(ctx context.Context, participantID string, notification RideNotification) error
}
