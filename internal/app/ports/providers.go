package ports

import (
	"transportgame/internal/domain/industry"
	"transportgame/internal/domain/world"
)

// TerrainOracle answers world-bound and terrain queries. Implementations are
// read-only from the simulation's point of view.
type TerrainOracle interface {
	Size() world.Size
	IsValidGridPosition(x, y int) bool
	TileType(x, y int) world.TerrainTag
}

// BuildingCatalog maps a building type to its footprint and base attributes.
// Missing entries are reported via ok, never via an error.
type BuildingCatalog interface {
	Definition(typeID string) (industry.Definition, bool)
}

// TickFrame is the per-tick summary pushed to live feed subscribers.
type TickFrame struct {
	Tick       int64   `json:"tick"`
	DeltaTime  float64 `json:"delta_time"`
	SimTime    float64 `json:"sim_time"`
	Buildings  int     `json:"buildings"`
	Trains     int     `json:"trains"`
	EventCount int     `json:"event_count"`
}

// TickBroadcaster fans a tick frame out to connected observers. Delivery is
// best effort.
type TickBroadcaster interface {
	BroadcastTick(frame TickFrame)
}
