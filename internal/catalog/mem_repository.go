package catalog

import (
	"context"
	"sync"
)

// MemRepository is an in-memory Repository with sequential ids from 0.
type MemRepository struct {
	mu           sync.RWMutex
	destinations map[int64]*Destination
	nextID       int64
}

func NewMemRepository() *MemRepository {
	return &MemRepository{destinations: make(map[int64]*Destination)}
}

func (r *MemRepository) Create(ctx context.Context, d *Destination) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	clone := *d
	clone.ID = id
	r.destinations[id] = &clone
	return id, nil
}

func (r *MemRepository) Find(ctx context.Context, id int64) (*Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.destinations[id]
	if !ok {
		return nil, ErrDestinationNotFound
	}
	clone := *d
	return &clone, nil
}
