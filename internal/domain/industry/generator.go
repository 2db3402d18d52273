package industry

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"transportgame/internal/domain/sim"
	"transportgame/internal/domain/world"
)

// Shared attempt ceiling across every class; generation shortfall below the
// target count is informational, not an error.
const maxPlacementAttempts = 1000

var ErrMissingDependency = errors.New("industry generator requires terrain and catalog")

// Placed is a fully initialized, already operational industry building keyed
// by its footprint anchor (top-left grid cell). Records live in an arena and
// are addressed by stable integer indices; the anchor map is a secondary
// index.
type Placed struct {
	Index    int
	ID       string
	Type     string
	Anchor   world.Point
	Width    int
	Height   int
	PlacedAt time.Time
	Building *sim.Building
}

func (p Placed) contains(x, y int) bool {
	return x >= p.Anchor.X && x < p.Anchor.X+p.Width &&
		y >= p.Anchor.Y && y < p.Anchor.Y+p.Height
}

type Generator struct {
	terrain TerrainSource
	catalog Catalog
	rng     *rand.Rand

	arena    []Placed
	byAnchor map[world.Point]int
	nextID   int
}

// NewGenerator wires a generator to its collaborators. The random source is
// explicit so callers can seed it for reproducible layouts; a nil rng gets a
// time-seeded default.
func NewGenerator(terrain TerrainSource, catalog Catalog, rng *rand.Rand) (*Generator, error) {
	if terrain == nil || catalog == nil {
		return nil, ErrMissingDependency
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		terrain:  terrain,
		catalog:  catalog,
		rng:      rng,
		byAnchor: map[world.Point]int{},
	}, nil
}

type Report struct {
	PlacedByType map[string]int `json:"placed_by_type"`
	Attempts     int            `json:"attempts"`
}

// Generate discards any previously generated set and rebuilds it from
// scratch. Terrain and catalog are never mutated.
func (g *Generator) Generate(classes ...Class) Report {
	g.arena = nil
	g.byAnchor = map[world.Point]int{}
	g.nextID = 0
	if len(classes) == 0 {
		classes = DefaultClasses()
	}
	report := Report{PlacedByType: map[string]int{}}
	for _, class := range classes {
		g.generateClass(class, &report)
	}
	return report
}

func (g *Generator) generateClass(class Class, report *Report) {
	def, ok := g.catalog.Definition(class.Type)
	if !ok {
		log.Printf("industry generator: no catalog definition for %q, skipping", class.Type)
		return
	}
	size := g.terrain.Size()
	maxX := size.Width - def.FootprintWidth
	maxY := size.Height - def.FootprintHeight
	if maxX < 0 || maxY < 0 {
		log.Printf("industry generator: footprint of %q exceeds world bounds, skipping", class.Type)
		return
	}

	placed := 0
	attempts := 0
	for placed < class.Target && attempts < maxPlacementAttempts {
		attempts++
		anchor := world.Point{
			X: g.rng.Intn(maxX + 1),
			Y: g.rng.Intn(maxY + 1),
		}
		if !g.suitable(anchor, def, class) {
			continue
		}
		g.place(anchor, def, class)
		placed++
	}
	report.PlacedByType[class.Type] = placed
	report.Attempts += attempts
	if placed < class.Target {
		log.Printf("industry generator: placed %d/%d of %q after %d attempts", placed, class.Target, class.Type, attempts)
	}
}

// suitable requires every footprint tile to be in bounds on allowed terrain,
// and the anchor to keep the class minimum distance from the anchors of all
// industries placed so far. The distance check deliberately uses anchors
// only, not footprint extents, matching the original placement behavior.
func (g *Generator) suitable(anchor world.Point, def Definition, class Class) bool {
	for dy := 0; dy < def.FootprintHeight; dy++ {
		for dx := 0; dx < def.FootprintWidth; dx++ {
			x, y := anchor.X+dx, anchor.Y+dy
			if !g.terrain.IsValidGridPosition(x, y) {
				return false
			}
			if !terrainAllowed(g.terrain.TileType(x, y), class.Allowed) {
				return false
			}
		}
	}
	for _, existing := range g.arena {
		dx := float64(anchor.X - existing.Anchor.X)
		dy := float64(anchor.Y - existing.Anchor.Y)
		if math.Hypot(dx, dy) < class.MinDistance {
			return false
		}
	}
	return true
}

func terrainAllowed(tag world.TerrainTag, allowed []world.TerrainTag) bool {
	for _, a := range allowed {
		if tag == a {
			return true
		}
	}
	return false
}

func (g *Generator) place(anchor world.Point, def Definition, class Class) {
	g.nextID++
	id := fmt.Sprintf("%s-%d", class.Type, g.nextID)
	building := sim.NewOperationalBuilding(id, class.Type, anchor, def.ConstructionSeconds, def.MaxHealth)
	index := len(g.arena)
	g.arena = append(g.arena, Placed{
		Index:    index,
		ID:       id,
		Type:     class.Type,
		Anchor:   anchor,
		Width:    def.FootprintWidth,
		Height:   def.FootprintHeight,
		PlacedAt: time.Now(),
		Building: building,
	})
	g.byAnchor[anchor] = index
}

// At is an exact anchor lookup.
func (g *Generator) At(anchor world.Point) (Placed, bool) {
	index, ok := g.byAnchor[anchor]
	if !ok {
		return Placed{}, false
	}
	return g.arena[index], true
}

// AtGrid scans for the first industry whose footprint covers (x, y).
func (g *Generator) AtGrid(x, y int) (Placed, bool) {
	for _, p := range g.arena {
		if p.contains(x, y) {
			return p, true
		}
	}
	return Placed{}, false
}

// All returns the generated set in placement order.
func (g *Generator) All() []Placed {
	return append([]Placed(nil), g.arena...)
}
