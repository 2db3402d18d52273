package gormrepo

import (
	"reflect"
	"testing"

	"transportgame/internal/adapter/repo/gorm/model"
	"transportgame/internal/domain/sim"
	"transportgame/internal/domain/world"
)

func TestBuildingModelRoundTrip(t *testing.T) {
	snap := sim.BuildingSnapshot{
		Entity: sim.EntitySnapshot{
			ID:        "b-1",
			Kind:      sim.KindBuilding,
			Position:  sim.Vec2{X: 3, Y: 4},
			MaxHealth: 125,
			Health:    80,
			Active:    true,
		},
		Type:                 "farm",
		State:                sim.BuildingUpgrading,
		GridPos:              world.Point{X: 3, Y: 4},
		ConstructionTime:     30,
		ConstructionProgress: 0.5,
		UpgradeLevel:         2,
		MaxUpgradeLevel:      3,
		OperationTime:        12.5,
		Version:              7,
	}

	got := buildingFromModel(buildingToModel(snap))
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestTrainModelRoundTrip(t *testing.T) {
	snap := sim.TrainSnapshot{
		Entity: sim.EntitySnapshot{
			ID:        "t-1",
			Kind:      sim.KindTrain,
			Position:  sim.Vec2{X: 1.5, Y: 2.5},
			MaxHealth: 100,
			Health:    100,
			Active:    true,
		},
		State:            sim.TrainMoving,
		Speed:            5,
		CargoCapacity:    100,
		Cargo:            map[string]int{"coal": 40, "grain": 10},
		Route:            []sim.Vec2{{X: 10, Y: 0}, {X: 10, Y: 10}},
		RouteIndex:       1,
		TargetPosition:   sim.Vec2{X: 10, Y: 10},
		PreviousPosition: sim.Vec2{X: 10, Y: 0},
		MovementProgress: 0.25,
		LoadingTime:      5,
		LoadingProgress:  0,
		Version:          3,
	}

	m, err := trainToModel(snap)
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	got, err := trainFromModel(m)
	if err != nil {
		t.Fatalf("from model: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestTrainModelEmptyColumns(t *testing.T) {
	got, err := trainFromModel(model.Train{TrainID: "t-2", Kind: string(sim.KindTrain)})
	if err != nil {
		t.Fatalf("from model: %v", err)
	}
	if got.Cargo == nil || len(got.Cargo) != 0 {
		t.Fatalf("expected empty cargo map, got %v", got.Cargo)
	}
	if got.Route == nil || len(got.Route) != 0 {
		t.Fatalf("expected empty route, got %v", got.Route)
	}
}
