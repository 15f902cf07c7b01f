package audit

import (
	"context"
	"encoding/json"
	"time"

	"rideescrow/internal/escrow/domain"
	"rideescrow/internal/shared/logger"
	"rideescrow/internal/shared/mq"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventTypeDestinationAdded complements the ride event types from the
// settlement domain.
const EventTypeDestinationAdded = "DESTINATION_ADDED"

// queueEventTypes maps each bound queue to the recorded event type.
var queueEventTypes = map[string]string{
	mq.QueueDestinationAdded: EventTypeDestinationAdded,
	mq.QueueRideBooked:       domain.EventRideBooked,
	mq.QueueRideCompleted:    domain.EventRideCompleted,
	mq.QueueRideCancelled:    domain.EventRideCancelled,
}

// Consumer drains the settlement queues into the audit log. Messages
// that cannot be parsed are rejected without requeue; storage failures
// requeue the message for another attempt.
type Consumer struct {
	mq   *mq.RabbitMQ
	repo Repository
	log  *logger.Logger
}

func NewConsumer(mqConn *mq.RabbitMQ, repo Repository, log *logger.Logger) *Consumer {
	return &Consumer{mq: mqConn, repo: repo, log: log}
}

// Start subscribes to every settlement queue. Non-blocking; consumers
// run until ctx is done.
func (c *Consumer) Start(ctx context.Context) error {
	for queue, eventType := range queueEventTypes {
		err := c.mq.Consume(ctx, queue, "audit-service", func(msg amqp.Delivery) {
			c.handle(ctx, eventType, msg)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// envelope is the common slice of every published event payload.
type envelope struct {
	EventID   string    `json:"event_id"`
	RideID    *int64    `json:"ride_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *Consumer) handle(ctx context.Context, eventType string, msg amqp.Delivery) {
	var env envelope
	if err := json.Unmarshal(msg.Body, &env); err != nil || env.EventID == "" {
		c.log.Error(logger.Entry{
			Action:  "audit_event_malformed",
			Message: string(msg.Body),
		})
		_ = msg.Reject(false)
		return
	}

	recordedAt := env.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	event := &Event{
		EventID:    env.EventID,
		EventType:  eventType,
		RideID:     env.RideID,
		Payload:    json.RawMessage(msg.Body),
		RecordedAt: recordedAt,
	}

	if err := c.repo.Append(ctx, event); err != nil {
		c.log.Error(logger.Entry{
			Action:  "audit_event_append_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"event_id": env.EventID,
			},
		})
		_ = msg.Nack(false, true)
		return
	}

	c.log.Debug(logger.Entry{
		Action:  "audit_event_recorded",
		Message: eventType,
		Additional: map[string]any{
			"event_id": env.EventID,
		},
	})
	_ = msg.Ack(false)
}
