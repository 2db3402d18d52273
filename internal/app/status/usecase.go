package status

import (
	"context"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/industry"
	"transportgame/internal/domain/sim"
	"transportgame/internal/domain/world"
)

// IndustryIndex is the read side of the generated industry set.
type IndustryIndex interface {
	Industries() []industry.Placed
	IndustryAt(anchor world.Point) (industry.Placed, bool)
	IndustryAtGrid(x, y int) (industry.Placed, bool)
}

type UseCase struct {
	BuildingRepo ports.BuildingStateRepository
	TrainRepo    ports.TrainStateRepository
	Terrain      ports.TerrainOracle
	Industries   IndustryIndex
}

func (u UseCase) World(_ context.Context) WorldView {
	view := WorldView{}
	if u.Terrain != nil {
		view.Size = u.Terrain.Size()
	}
	if u.Industries != nil {
		view.Industries = len(u.Industries.Industries())
	}
	return view
}

func (u UseCase) GetBuilding(ctx context.Context, id string) (BuildingView, error) {
	snap, err := u.BuildingRepo.GetByID(ctx, id)
	if err != nil {
		return BuildingView{}, err
	}
	return projectBuilding(snap), nil
}

func (u UseCase) ListBuildings(ctx context.Context) ([]BuildingView, error) {
	snaps, err := u.BuildingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BuildingView, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, projectBuilding(snap))
	}
	return out, nil
}

func (u UseCase) GetTrain(ctx context.Context, id string) (TrainView, error) {
	snap, err := u.TrainRepo.GetByID(ctx, id)
	if err != nil {
		return TrainView{}, err
	}
	return projectTrain(snap), nil
}

func (u UseCase) ListTrains(ctx context.Context) ([]TrainView, error) {
	snaps, err := u.TrainRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TrainView, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, projectTrain(snap))
	}
	return out, nil
}

func (u UseCase) ListIndustries(_ context.Context) []IndustryView {
	if u.Industries == nil {
		return nil
	}
	placed := u.Industries.Industries()
	out := make([]IndustryView, 0, len(placed))
	for _, p := range placed {
		out = append(out, projectIndustry(p))
	}
	return out
}

func (u UseCase) IndustryAtGrid(_ context.Context, x, y int) (IndustryView, bool) {
	if u.Industries == nil {
		return IndustryView{}, false
	}
	p, ok := u.Industries.IndustryAtGrid(x, y)
	if !ok {
		return IndustryView{}, false
	}
	return projectIndustry(p), true
}

func projectBuilding(snap sim.BuildingSnapshot) BuildingView {
	// Efficiency derives from the state machine, so rebuild it from the
	// snapshot rather than duplicating the formula here.
	b := sim.RestoreBuilding(snap)
	return BuildingView{
		ID:                   snap.Entity.ID,
		Type:                 snap.Type,
		State:                string(snap.State),
		GridPos:              snap.GridPos,
		Position:             snap.Entity.Position,
		Health:               snap.Entity.Health,
		MaxHealth:            snap.Entity.MaxHealth,
		ConstructionProgress: snap.ConstructionProgress,
		UpgradeLevel:         snap.UpgradeLevel,
		MaxUpgradeLevel:      snap.MaxUpgradeLevel,
		OperationTime:        snap.OperationTime,
		Efficiency:           b.Efficiency(),
	}
}

func projectTrain(snap sim.TrainSnapshot) TrainView {
	t := sim.RestoreTrain(snap)
	return TrainView{
		ID:               snap.Entity.ID,
		State:            string(snap.State),
		Position:         snap.Entity.Position,
		Speed:            snap.Speed,
		Cargo:            snap.Cargo,
		CargoTotal:       t.TotalCargo(),
		CargoCapacity:    snap.CargoCapacity,
		CargoFull:        t.IsCargoFull(),
		Route:            snap.Route,
		RouteIndex:       snap.RouteIndex,
		MovementProgress: snap.MovementProgress,
		LoadingProgress:  snap.LoadingProgress,
	}
}

func projectIndustry(p industry.Placed) IndustryView {
	view := IndustryView{
		ID:       p.ID,
		Type:     p.Type,
		Anchor:   p.Anchor,
		Width:    p.Width,
		Height:   p.Height,
		PlacedAt: p.PlacedAt,
	}
	if p.Building != nil {
		view.State = string(p.Building.State)
	}
	return view
}
