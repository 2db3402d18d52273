package runtime

import (
	"math"

	"transportgame/internal/domain/world"
)

type Config struct {
	Width  int
	Height int
	Seed   int64
}

// Provider derives terrain deterministically from tile coordinates and the
// map seed. Two providers built with the same config answer identically.
type Provider struct {
	cfg Config
}

func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Seed: 1}
}

func NewProvider(cfg Config) Provider {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	return Provider{cfg: cfg}
}

func (p Provider) Size() world.Size {
	return world.Size{Width: p.cfg.Width, Height: p.cfg.Height}
}

func (p Provider) IsValidGridPosition(x, y int) bool {
	return p.Size().Contains(x, y)
}

func (p Provider) TileType(x, y int) world.TerrainTag {
	if !p.IsValidGridPosition(x, y) {
		return world.TerrainWater
	}
	return p.genTile(x, y)
}

func (p Provider) Tile(x, y int) world.Tile {
	tag := p.TileType(x, y)
	return world.Tile{X: x, Y: y, Terrain: tag, Passable: tag != world.TerrainWater}
}

type terrainZone int

const (
	zoneLowland terrainZone = iota
	zoneMidland
	zoneHighland
)

func (p Provider) genTile(x, y int) world.TerrainTag {
	seed := p.tileSeed(x, y)
	switch p.zoneByDistance(x, y) {
	case zoneLowland:
		if seed%3 == 0 {
			return world.TerrainFarmland
		}
		return world.TerrainGrass
	case zoneMidland:
		if seed%13 == 0 {
			return world.TerrainWater
		}
		if seed%4 == 0 {
			return world.TerrainForest
		}
		if seed%5 == 0 {
			return world.TerrainHills
		}
		return world.TerrainGrass
	default:
		if seed%11 == 0 {
			return world.TerrainWater
		}
		if seed%3 == 0 {
			return world.TerrainMountain
		}
		if seed%2 == 0 {
			return world.TerrainHills
		}
		return world.TerrainSand
	}
}

// zoneByDistance rings the map around its center so farmland concentrates in
// the interior and mountains toward the edges.
func (p Provider) zoneByDistance(x, y int) terrainZone {
	cx := float64(p.cfg.Width) / 2
	cy := float64(p.cfg.Height) / 2
	d := math.Hypot(float64(x)-cx, float64(y)-cy)
	limit := math.Min(cx, cy)
	switch {
	case d <= limit*0.45:
		return zoneLowland
	case d <= limit*0.8:
		return zoneMidland
	default:
		return zoneHighland
	}
}

func (p Provider) tileSeed(x, y int) int {
	v := x*73856093 ^ y*19349663 ^ int(p.cfg.Seed)*83492791
	if v < 0 {
		v = -v
	}
	return v
}
