package registry

import (
	"context"
	"sync"
	"time"
)

// MemRepository is an in-memory Repository, used in tests and as the
// reference implementation of registration semantics.
type MemRepository struct {
	mu           sync.RWMutex
	participants map[string]*Participant
}

func NewMemRepository() *MemRepository {
	return &MemRepository{participants: make(map[string]*Participant)}
}

func (r *MemRepository) Register(ctx context.Context, id string, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p, ok := r.participants[id]
	if !ok {
		p = &Participant{ID: id, CreatedAt: now}
		r.participants[id] = p
	}
	if p.HasRole(role) {
		return ErrAlreadyRegistered
	}
	switch role {
	case RoleRider:
		p.IsRider = true
	case RoleDriver:
		p.IsDriver = true
	default:
		return ErrUnknownRole
	}
	p.UpdatedAt = now
	return nil
}

func (r *MemRepository) Find(ctx context.Context, id string) (*Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	clone := *p
	return &clone, nil
}
