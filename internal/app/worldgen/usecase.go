package worldgen

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/industry"
	"transportgame/internal/domain/world"
)

var ErrMissingDependency = errors.New("worldgen requires terrain and catalog")

// UseCase runs the industry placement generator and serves the generated set.
// Regeneration builds a fresh arena and swaps it in whole, so readers never
// observe a half-built set.
type UseCase struct {
	Terrain ports.TerrainOracle
	Catalog ports.BuildingCatalog
	Metrics ports.SimMetrics
	Seed    int64
	Classes []industry.Class

	mu  sync.RWMutex
	gen *industry.Generator
}

// Generate rebuilds the industry set from scratch. Each call reseeds the
// random source, so a fixed Seed yields a reproducible layout.
func (u *UseCase) Generate(_ context.Context) (industry.Report, error) {
	if u.Terrain == nil || u.Catalog == nil {
		return industry.Report{}, ErrMissingDependency
	}
	fresh, err := industry.NewGenerator(u.Terrain, u.Catalog, rand.New(rand.NewSource(u.Seed)))
	if err != nil {
		return industry.Report{}, err
	}
	report := fresh.Generate(u.Classes...)

	u.mu.Lock()
	u.gen = fresh
	u.mu.Unlock()

	if u.Metrics != nil {
		classes := u.Classes
		if len(classes) == 0 {
			classes = industry.DefaultClasses()
		}
		for _, class := range classes {
			placed := report.PlacedByType[class.Type]
			for i := 0; i < placed; i++ {
				u.Metrics.RecordPlacement(class.Type)
			}
			if placed < class.Target {
				u.Metrics.RecordShortfall(class.Type, class.Target-placed)
			}
		}
	}
	return report, nil
}

// Industries returns the generated set in placement order.
func (u *UseCase) Industries() []industry.Placed {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.gen == nil {
		return nil
	}
	return u.gen.All()
}

// IndustryAt is an exact anchor lookup.
func (u *UseCase) IndustryAt(anchor world.Point) (industry.Placed, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.gen == nil {
		return industry.Placed{}, false
	}
	return u.gen.At(anchor)
}

// IndustryAtGrid finds the first industry whose footprint covers (x, y).
func (u *UseCase) IndustryAtGrid(x, y int) (industry.Placed, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.gen == nil {
		return industry.Placed{}, false
	}
	return u.gen.AtGrid(x, y)
}
