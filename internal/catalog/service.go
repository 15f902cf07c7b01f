package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rideescrow/internal/shared/logger"
)

// DriverChecker is the slice of the participant registry the catalog needs.
type DriverChecker interface {
	IsDriver(ctx context.Context, id string) (bool, error)
}

// EventPublisher emits the DestinationAdded audit event.
type EventPublisher interface {
	PublishDestinationAdded(ctx context.Context, event DestinationAddedEvent) error
}

// DestinationAddedEvent is the append-only audit record for a new entry.
type DestinationAddedEvent struct {
	EventID       string    `json:"event_id"`
	DestinationID int64     `json:"destination_id"`
	DriverID      string    `json:"driver_id"`
	Location      string    `json:"location"`
	Fare          int64     `json:"fare"`
	Timestamp     time.Time `json:"timestamp"`
}

// Service is the Destination Catalog.
type Service struct {
	repo      Repository
	drivers   DriverChecker
	publisher EventPublisher
	log       *logger.Logger
}

func NewService(repo Repository, drivers DriverChecker, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		drivers:   drivers,
		publisher: publisher,
		log:       log,
	}
}

// AddDestination creates a catalog entry for a registered driver.
// Fare must be positive; availability is set true at creation.
func (s *Service) AddDestination(ctx context.Context, driverID, location string, fare int64) (*Destination, error) {
	ok, err := s.drivers.IsDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("check driver role: %w", err)
	}
	if !ok {
		return nil, ErrNotDriver
	}
	if fare <= 0 {
		return nil, ErrInvalidFare
	}

	d := &Destination{
		DriverID:  driverID,
		Location:  location,
		Fare:      fare,
		Available: true,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}
	d.ID = id

	s.log.Info(logger.Entry{
		Action:  "destination_added",
		Message: location,
		Additional: map[string]any{
			"destination_id": id,
			"driver_id":      driverID,
			"fare":           fare,
		},
	})

	if s.publisher != nil {
		event := DestinationAddedEvent{
			DestinationID: id,
			DriverID:      driverID,
			Location:      location,
			Fare:          fare,
			Timestamp:     d.CreatedAt,
		}
		if err := s.publisher.PublishDestinationAdded(ctx, event); err != nil {
			// Audit events are best-effort; the destination is already created.
			s.log.Error(logger.Entry{
				Action:  "publish_destination_added_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
				Additional: map[string]any{
					"destination_id": strconv.FormatInt(id, 10),
				},
			})
		}
	}

	return d, nil
}

// GetDestination returns a catalog entry by id.
func (s *Service) GetDestination(ctx context.Context, id int64) (*Destination, error) {
	return s.repo.Find(ctx, id)
}

// GetFare returns the fare for a destination.
func (s *Service) GetFare(ctx context.Context, id int64) (int64, error) {
	d, err := s.repo.Find(ctx, id)
	if err != nil {
		return 0, err
	}
	return d.Fare, nil
}
