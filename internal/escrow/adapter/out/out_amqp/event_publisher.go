package out_amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"rideescrow/internal/escrow/domain"
	"rideescrow/internal/shared/logger"
	"rideescrow/internal/shared/mq"
)

// EventPublisher pushes settlement events onto the settlement exchange
// for the audit service to record.
type EventPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

func NewEventPublisher(mqConn *mq.RabbitMQ, log *logger.Logger) *EventPublisher {
	return &EventPublisher{mq: mqConn, log: log}
}

func (p *EventPublisher) PublishRideBooked(ctx context.Context, event domain.RideBookedEvent) error {
	return p.publish(ctx, mq.QueueRideBooked, "ride_booked_published", event.RideID, event)
}

func (p *EventPublisher) PublishRideCompleted(ctx context.Context, event domain.RideCompletedEvent) error {
	return p.publish(ctx, mq.QueueRideCompleted, "ride_completed_published", event.RideID, event)
}

func (p *EventPublisher) PublishRideCancelled(ctx context.Context, event domain.RideCancelledEvent) error {
	return p.publish(ctx, mq.QueueRideCancelled, "ride_cancelled_published", event.RideID, event)
}

func (p *EventPublisher) publish(ctx context.Context, routingKey, action string, rideID int64, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.mq.Publish(ctx, mq.SettlementExchange, routingKey, payload); err != nil {
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action: action,
		RideID: fmt.Sprintf("%d", rideID),
		Additional: map[string]any{
			"routing_key": routingKey,
		},
	})
	return nil
}
