package out_ws

import (
	"context"

	"rideescrow/internal/escrow/application/ports/out"
	"rideescrow/internal/shared/ws"
)

// HubNotifier delivers ride notifications over the shared WebSocket hub.
// Participants with no live connection simply miss the push; the ride
// record remains the source of truth.
type HubNotifier struct {
	hub *ws.Hub
}

func NewHubNotifier(hub *ws.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyParticipant(_ context.Context, participantID string, notification out.RideNotification) error {
	return n.hub.SendToParticipantJSON(participantID, notification)
}
