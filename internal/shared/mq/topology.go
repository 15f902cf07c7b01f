package mq

import (
	"fmt"

	"rideescrow/internal/shared/logger"
)

// Exchange and queue names for settlement audit events.
const (
	SettlementExchange = "settlement_topic"

	QueueDestinationAdded = "destination.added"
	QueueRideBooked       = "ride.booked"
	QueueRideCompleted    = "ride.completed"
	QueueRideCancelled    = "ride.cancelled"
)

// SetupTopology declares the settlement exchange, queues and bindings.
// Routing keys equal queue names.
func SetupTopology(mq *RabbitMQ, log *logger.Logger) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	if err := ch.ExchangeDeclare(
		SettlementExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // args
	); err != nil {
		return fmt.Errorf("declare %s: %w", SettlementExchange, err)
	}

	queues := []string{
		QueueDestinationAdded,
		QueueRideBooked,
		QueueRideCompleted,
		QueueRideCancelled,
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
		if err := ch.QueueBind(q, q, SettlementExchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", q, err)
		}
	}

	log.Info(logger.Entry{
		Action:  "topology_setup_complete",
		Message: "settlement exchange and queues created",
	})

	return nil
}
