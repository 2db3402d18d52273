package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"transportgame/internal/adapter/repo/gorm/model"
	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"

	"gorm.io/gorm"
)

type TrainRepo struct {
	db *gorm.DB
}

func NewTrainRepo(db *gorm.DB) TrainRepo {
	return TrainRepo{db: db}
}

func (r TrainRepo) GetByID(ctx context.Context, id string) (sim.TrainSnapshot, error) {
	var m model.Train
	if err := getDBFromCtx(ctx, r.db).Where("train_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sim.TrainSnapshot{}, ports.ErrNotFound
		}
		return sim.TrainSnapshot{}, err
	}
	return trainFromModel(m)
}

func (r TrainRepo) List(ctx context.Context) ([]sim.TrainSnapshot, error) {
	var rows []model.Train
	if err := getDBFromCtx(ctx, r.db).Order("train_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]sim.TrainSnapshot, 0, len(rows))
	for _, m := range rows {
		snap, err := trainFromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

func (r TrainRepo) SaveWithVersion(ctx context.Context, snapshot sim.TrainSnapshot, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	m, err := trainToModel(snapshot)
	if err != nil {
		return err
	}
	if expectedVersion == 0 {
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.Train{}).
		Where("train_id = ? AND version = ?", snapshot.Entity.ID, expectedVersion).
		Updates(map[string]any{
			"x":                 m.X,
			"y":                 m.Y,
			"max_health":        m.MaxHealth,
			"health":            m.Health,
			"active":            m.Active,
			"state":             m.State,
			"speed":             m.Speed,
			"cargo_capacity":    m.CargoCapacity,
			"cargo":             m.Cargo,
			"route":             m.Route,
			"route_index":       m.RouteIndex,
			"target_x":          m.TargetX,
			"target_y":          m.TargetY,
			"prev_x":            m.PrevX,
			"prev_y":            m.PrevY,
			"movement_progress": m.MovementProgress,
			"loading_time":      m.LoadingTime,
			"loading_progress":  m.LoadingProgress,
			"version":           m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func trainToModel(s sim.TrainSnapshot) (model.Train, error) {
	cargo, err := json.Marshal(s.Cargo)
	if err != nil {
		return model.Train{}, err
	}
	route, err := json.Marshal(s.Route)
	if err != nil {
		return model.Train{}, err
	}
	return model.Train{
		TrainID:          s.Entity.ID,
		Kind:             string(s.Entity.Kind),
		X:                s.Entity.Position.X,
		Y:                s.Entity.Position.Y,
		MaxHealth:        int32(s.Entity.MaxHealth),
		Health:           int32(s.Entity.Health),
		Active:           s.Entity.Active,
		State:            string(s.State),
		Speed:            s.Speed,
		CargoCapacity:    int32(s.CargoCapacity),
		Cargo:            cargo,
		Route:            route,
		RouteIndex:       int32(s.RouteIndex),
		TargetX:          s.TargetPosition.X,
		TargetY:          s.TargetPosition.Y,
		PrevX:            s.PreviousPosition.X,
		PrevY:            s.PreviousPosition.Y,
		MovementProgress: s.MovementProgress,
		LoadingTime:      s.LoadingTime,
		LoadingProgress:  s.LoadingProgress,
		Version:          s.Version,
	}, nil
}

func trainFromModel(m model.Train) (sim.TrainSnapshot, error) {
	cargo := map[string]int{}
	if len(m.Cargo) > 0 {
		if err := json.Unmarshal(m.Cargo, &cargo); err != nil {
			return sim.TrainSnapshot{}, err
		}
	}
	route := []sim.Vec2{}
	if len(m.Route) > 0 {
		if err := json.Unmarshal(m.Route, &route); err != nil {
			return sim.TrainSnapshot{}, err
		}
	}
	return sim.TrainSnapshot{
		Entity: sim.EntitySnapshot{
			ID:        m.TrainID,
			Kind:      sim.EntityKind(m.Kind),
			Position:  sim.Vec2{X: m.X, Y: m.Y},
			MaxHealth: int(m.MaxHealth),
			Health:    int(m.Health),
			Active:    m.Active,
		},
		State:            sim.TrainState(m.State),
		Speed:            m.Speed,
		CargoCapacity:    int(m.CargoCapacity),
		Cargo:            cargo,
		Route:            route,
		RouteIndex:       int(m.RouteIndex),
		TargetPosition:   sim.Vec2{X: m.TargetX, Y: m.TargetY},
		PreviousPosition: sim.Vec2{X: m.PrevX, Y: m.PrevY},
		MovementProgress: m.MovementProgress,
		LoadingTime:      m.LoadingTime,
		LoadingProgress:  m.LoadingProgress,
		Version:          m.Version,
	}, nil
}
