package industry

import "transportgame/internal/domain/world"

// Class describes one natural industry type the generator seeds into the
// world.
type Class struct {
	Type        string
	Target      int
	MinDistance float64
	Allowed     []world.TerrainTag
}

func DefaultClasses() []Class {
	return []Class{
		{
			Type:        "farm",
			Target:      15,
			MinDistance: 5,
			Allowed:     []world.TerrainTag{world.TerrainFarmland, world.TerrainGrass},
		},
		{
			Type:        "mine",
			Target:      8,
			MinDistance: 4,
			Allowed:     []world.TerrainTag{world.TerrainMountain, world.TerrainHills},
		},
	}
}

// Definition is the catalog entry the generator needs for a building type.
type Definition struct {
	TypeID              string  `json:"type_id"`
	FootprintWidth      int     `json:"footprint_width"`
	FootprintHeight     int     `json:"footprint_height"`
	MaxHealth           int     `json:"max_health"`
	ConstructionSeconds float64 `json:"construction_seconds"`
}

// Catalog resolves a building type to its definition. Absent entries are
// reported through ok, never through an error.
type Catalog interface {
	Definition(typeID string) (Definition, bool)
}

// TerrainSource answers grid-bound and terrain-tag queries. The generator only
// reads from it.
type TerrainSource interface {
	Size() world.Size
	IsValidGridPosition(x, y int) bool
	TileType(x, y int) world.TerrainTag
}
