package memory

import (
	"context"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, entityID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[entityID] = append(r.store.events[entityID], events...)
	return nil
}

// ListByEntityID returns up to limit events, most recent first.
func (r EventRepo) ListByEntityID(_ context.Context, entityID string, limit int) ([]sim.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	stored := r.store.events[entityID]
	if len(stored) == 0 {
		return nil, ports.ErrNotFound
	}
	out := make([]sim.Event, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
