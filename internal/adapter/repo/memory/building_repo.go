package memory

import (
	"context"
	"sort"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"
)

type BuildingRepo struct {
	store *Store
}

func NewBuildingRepo(store *Store) BuildingRepo {
	return BuildingRepo{store: store}
}

func (r BuildingRepo) GetByID(_ context.Context, id string) (sim.BuildingSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	snap, ok := r.store.buildings[id]
	if !ok {
		return sim.BuildingSnapshot{}, ports.ErrNotFound
	}
	return snap, nil
}

func (r BuildingRepo) List(_ context.Context) ([]sim.BuildingSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]sim.BuildingSnapshot, 0, len(r.store.buildings))
	for _, snap := range r.store.buildings {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entity.ID < out[j].Entity.ID })
	return out, nil
}

func (r BuildingRepo) SaveWithVersion(_ context.Context, snapshot sim.BuildingSnapshot, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.buildings[snapshot.Entity.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.buildings[snapshot.Entity.ID] = snapshot
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.buildings[snapshot.Entity.ID] = snapshot
	return nil
}
