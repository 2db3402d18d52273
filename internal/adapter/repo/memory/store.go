package memory

import (
	"sync"

	"transportgame/internal/domain/sim"
)

// Store backs the in-memory repositories. The tx mutex serializes
// transactions; the state mutex guards the maps so read paths outside a
// transaction stay safe.
type Store struct {
	txMu sync.Mutex

	mu        sync.RWMutex
	buildings map[string]sim.BuildingSnapshot
	trains    map[string]sim.TrainSnapshot
	events    map[string][]sim.Event
}

func NewStore() *Store {
	return &Store{
		buildings: make(map[string]sim.BuildingSnapshot),
		trains:    make(map[string]sim.TrainSnapshot),
		events:    make(map[string][]sim.Event),
	}
}
