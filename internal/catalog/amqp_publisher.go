package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"rideescrow/internal/shared/logger"
	"rideescrow/internal/shared/mq"

	"github.com/google/uuid"
)

// AmqpPublisher publishes DestinationAdded events to the settlement exchange.
type AmqpPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

func NewAmqpPublisher(mqConn *mq.RabbitMQ, log *logger.Logger) *AmqpPublisher {
	return &AmqpPublisher{mq: mqConn, log: log}
}

func (p *AmqpPublisher) PublishDestinationAdded(ctx context.Context, event DestinationAddedEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.mq.Publish(ctx, mq.SettlementExchange, mq.QueueDestinationAdded, payload); err != nil {
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action:  "destination_added_published",
		Message: event.Location,
		Additional: map[string]any{
			"destination_id": event.DestinationID,
			"event_id":       event.EventID,
		},
	})
	return nil
}
