package gormrepo

import (
	"context"
	"errors"

	"transportgame/internal/adapter/repo/gorm/model"
	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"
	"transportgame/internal/domain/world"

	"gorm.io/gorm"
)

type BuildingRepo struct {
	db *gorm.DB
}

func NewBuildingRepo(db *gorm.DB) BuildingRepo {
	return BuildingRepo{db: db}
}

func (r BuildingRepo) GetByID(ctx context.Context, id string) (sim.BuildingSnapshot, error) {
	var m model.Building
	if err := getDBFromCtx(ctx, r.db).Where("building_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sim.BuildingSnapshot{}, ports.ErrNotFound
		}
		return sim.BuildingSnapshot{}, err
	}
	return buildingFromModel(m), nil
}

func (r BuildingRepo) List(ctx context.Context) ([]sim.BuildingSnapshot, error) {
	var rows []model.Building
	if err := getDBFromCtx(ctx, r.db).Order("building_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]sim.BuildingSnapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, buildingFromModel(m))
	}
	return out, nil
}

func (r BuildingRepo) SaveWithVersion(ctx context.Context, snapshot sim.BuildingSnapshot, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	m := buildingToModel(snapshot)
	if expectedVersion == 0 {
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.Building{}).
		Where("building_id = ? AND version = ?", snapshot.Entity.ID, expectedVersion).
		Updates(map[string]any{
			"x":                     m.X,
			"y":                     m.Y,
			"grid_x":                m.GridX,
			"grid_y":                m.GridY,
			"max_health":            m.MaxHealth,
			"health":                m.Health,
			"active":                m.Active,
			"state":                 m.State,
			"construction_time":     m.ConstructionTime,
			"construction_progress": m.ConstructionProgress,
			"upgrade_level":         m.UpgradeLevel,
			"max_upgrade_level":     m.MaxUpgradeLevel,
			"operation_time":        m.OperationTime,
			"version":               m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func buildingToModel(s sim.BuildingSnapshot) model.Building {
	return model.Building{
		BuildingID:           s.Entity.ID,
		Kind:                 string(s.Entity.Kind),
		X:                    s.Entity.Position.X,
		Y:                    s.Entity.Position.Y,
		GridX:                int32(s.GridPos.X),
		GridY:                int32(s.GridPos.Y),
		MaxHealth:            int32(s.Entity.MaxHealth),
		Health:               int32(s.Entity.Health),
		Active:               s.Entity.Active,
		Type:                 s.Type,
		State:                string(s.State),
		ConstructionTime:     s.ConstructionTime,
		ConstructionProgress: s.ConstructionProgress,
		UpgradeLevel:         int32(s.UpgradeLevel),
		MaxUpgradeLevel:      int32(s.MaxUpgradeLevel),
		OperationTime:        s.OperationTime,
		Version:              s.Version,
	}
}

func buildingFromModel(m model.Building) sim.BuildingSnapshot {
	return sim.BuildingSnapshot{
		Entity: sim.EntitySnapshot{
			ID:        m.BuildingID,
			Kind:      sim.EntityKind(m.Kind),
			Position:  sim.Vec2{X: m.X, Y: m.Y},
			MaxHealth: int(m.MaxHealth),
			Health:    int(m.Health),
			Active:    m.Active,
		},
		Type:                 m.Type,
		State:                sim.BuildingState(m.State),
		GridPos:              world.Point{X: int(m.GridX), Y: int(m.GridY)},
		ConstructionTime:     m.ConstructionTime,
		ConstructionProgress: m.ConstructionProgress,
		UpgradeLevel:         int(m.UpgradeLevel),
		MaxUpgradeLevel:      int(m.MaxUpgradeLevel),
		OperationTime:        m.OperationTime,
		Version:              m.Version,
	}
}
