package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"rideescrow/internal/escrow/application/ports/out"
	"rideescrow/internal/shared/logger"

	"github.com/google/uuid"
)

// SettlementEngine is the sole authority over ride status transitions and
// fund movement. All three operations run under one mutex held for the
// full operation, including the transfer and any rollback, so transitions
// on the same state commit in a strict total order and an in-flight
// transfer can never be observed by another operation. Status is recorded
// in the ledger before the corresponding outbound transfer is issued; a
// failed transfer rolls the status back.
type SettlementEngine struct {
	ledger    out.RideLedger
	funds     out.FundGateway
	registry  out.ParticipantRegistry
	catalog   out.FareCatalog
	publisher out.EventPublisher
	notifier  out.RideNotifier
	log       *logger.Logger

	mu sync.Mutex
}

func NewSettlementEngine(
	ledger out.RideLedger,
	funds out.FundGateway,
	registry out.ParticipantRegistry,
	catalog out.FareCatalog,
	publisher out.EventPublisher,
	notifier out.RideNotifier,
	log *logger.Logger,
) *SettlementEngine {
	return &SettlementEngine{
		ledger:    ledger,
		funds:     funds,
		registry:  registry,
		catalog:   catalog,
		publisher: publisher,
		notifier:  notifier,
		log:       log,
	}
}

func (e *SettlementEngine) now() time.Time {
	return time.Now().UTC()
}

func newEventID() string {
	return uuid.New().String()
}

func rideIDString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// notify pushes a notification without affecting the operation outcome.
func (e *SettlementEngine) notify(ctx context.Context, participantID string, n out.RideNotification) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.NotifyParticipant(ctx, participantID, n); err != nil {
		e.log.Error(logger.Entry{
			Action:  "notify_participant_failed",
			Message: err.Error(),
			RideID:  rideIDString(n.RideID),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"participant_id": participantID,
			},
		})
	}
}
