package memory

import (
	"context"
	"sort"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"
)

type TrainRepo struct {
	store *Store
}

func NewTrainRepo(store *Store) TrainRepo {
	return TrainRepo{store: store}
}

func (r TrainRepo) GetByID(_ context.Context, id string) (sim.TrainSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	snap, ok := r.store.trains[id]
	if !ok {
		return sim.TrainSnapshot{}, ports.ErrNotFound
	}
	return snap, nil
}

func (r TrainRepo) List(_ context.Context) ([]sim.TrainSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]sim.TrainSnapshot, 0, len(r.store.trains))
	for _, snap := range r.store.trains {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entity.ID < out[j].Entity.ID })
	return out, nil
}

func (r TrainRepo) SaveWithVersion(_ context.Context, snapshot sim.TrainSnapshot, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.trains[snapshot.Entity.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.trains[snapshot.Entity.ID] = snapshot
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.trains[snapshot.Entity.ID] = snapshot
	return nil
}
