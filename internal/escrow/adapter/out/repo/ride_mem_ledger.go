package repo

import (
	"context"
	"sync"

	"rideescrow/internal/escrow/domain"
)

// MemRideLedger is the in-memory ledger used by tests and local runs.
// Ids are handed out from 0 and never reused.
type MemRideLedger struct {
	mu     sync.RWMutex
	rides  map[int64]*domain.Ride
	nextID int64
}

func NewMemRideLedger() *MemRideLedger {
	return &MemRideLedger{rides: make(map[int64]*domain.Ride)}
}

func (l *MemRideLedger) Create(_ context.Context, ride *domain.Ride) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++

	stored := *ride
	stored.ID = id
	l.rides[id] = &stored
	return id, nil
}

func (l *MemRideLedger) Get(_ context.Context, rideID int64) (*domain.Ride, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ride, ok := l.rides[rideID]
	if !ok {
		return nil, domain.ErrRideNotFound
	}
	clone := *ride
	return &clone, nil
}

func (l *MemRideLedger) MarkCompleted(ctx context.Context, rideID int64) error {
	return l.setStatus(rideID, domain.StatusCompleted)
}

func (l *MemRideLedger) MarkCancelled(ctx context.Context, rideID int64) error {
	return l.setStatus(rideID, domain.StatusCancelled)
}

func (l *MemRideLedger) Reopen(ctx context.Context, rideID int64) error {
	return l.setStatus(rideID, domain.StatusBooked)
}

func (l *MemRideLedger) setStatus(rideID int64, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ride, ok := l.rides[rideID]
	if !ok {
		return domain.ErrRideNotFound
	}
	ride.Status = status
	return nil
}
