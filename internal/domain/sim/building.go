package sim

import "transportgame/internal/domain/world"

type BuildingState string

const (
	BuildingUnderConstruction BuildingState = "under_construction"
	BuildingOperational       BuildingState = "operational"
	BuildingDamaged           BuildingState = "damaged"
	BuildingDestroyed         BuildingState = "destroyed"
	BuildingUpgrading         BuildingState = "upgrading"
)

const (
	DefaultMaxUpgradeLevel = 3

	// Health fraction below which an operational building degrades to Damaged.
	damagedThreshold = 0.5

	// Each completed upgrade raises max health by this much.
	upgradeHealthBonus = 25
)

type Building struct {
	Entity

	Type                 string
	State                BuildingState
	GridPos              world.Point
	ConstructionTime     float64
	ConstructionProgress float64
	UpgradeLevel         int
	MaxUpgradeLevel      int
	OperationTime        float64
}

// NewBuilding creates a building and immediately arms construction.
func NewBuilding(id, buildingType string, gridPos world.Point, constructionSeconds float64, maxHealth int) *Building {
	b := &Building{
		Entity: Entity{
			ID:        id,
			Kind:      KindBuilding,
			Position:  Vec2{X: float64(gridPos.X), Y: float64(gridPos.Y)},
			MaxHealth: maxHealth,
			Active:    true,
		},
		Type:             buildingType,
		GridPos:          gridPos,
		ConstructionTime: constructionSeconds,
		UpgradeLevel:     1,
		MaxUpgradeLevel:  DefaultMaxUpgradeLevel,
	}
	b.StartConstruction()
	return b
}

// NewOperationalBuilding creates a building already completed, as the industry
// generator hands them off.
func NewOperationalBuilding(id, buildingType string, gridPos world.Point, constructionSeconds float64, maxHealth int) *Building {
	b := NewBuilding(id, buildingType, gridPos, constructionSeconds, maxHealth)
	b.State = BuildingOperational
	b.ConstructionProgress = 1
	b.Health = b.MaxHealth
	return b
}

// StartConstruction re-arms construction from scratch. Callable in any state.
func (b *Building) StartConstruction() {
	b.State = BuildingUnderConstruction
	b.ConstructionProgress = 0
	b.Health = 1
}

// Advance drives the state machine by dt seconds and returns any completion
// events fired by the transition.
func (b *Building) Advance(dt float64) []Event {
	if dt <= 0 {
		return nil
	}
	switch b.State {
	case BuildingUnderConstruction:
		if b.ConstructionTime <= 0 {
			return b.completeConstruction()
		}
		b.ConstructionProgress += dt / b.ConstructionTime
		if b.ConstructionProgress >= 1 {
			return b.completeConstruction()
		}
	case BuildingOperational:
		b.OperationTime += dt
	case BuildingUpgrading:
		// Upgrades run at twice the construction rate.
		if b.ConstructionTime <= 0 {
			return b.completeUpgrade()
		}
		b.ConstructionProgress += dt / (b.ConstructionTime * 0.5)
		if b.ConstructionProgress >= 1 {
			return b.completeUpgrade()
		}
	}
	return nil
}

func (b *Building) completeConstruction() []Event {
	b.ConstructionProgress = 1
	b.State = BuildingOperational
	b.Health = b.MaxHealth
	b.OperationTime = 0
	return []Event{{Kind: EventConstructionCompleted, EntityID: b.ID, Payload: map[string]any{
		"building_type": b.Type,
	}}}
}

func (b *Building) completeUpgrade() []Event {
	b.ConstructionProgress = 1
	b.UpgradeLevel++
	b.State = BuildingOperational
	b.MaxHealth += upgradeHealthBonus
	b.Health = b.MaxHealth
	return []Event{{Kind: EventUpgradeCompleted, EntityID: b.ID, Payload: map[string]any{
		"building_type": b.Type,
		"upgrade_level": b.UpgradeLevel,
	}}}
}

// StartUpgrade reports whether the upgrade was accepted. Only an operational
// building below its level cap may upgrade.
func (b *Building) StartUpgrade() bool {
	if b.State != BuildingOperational || b.UpgradeLevel >= b.MaxUpgradeLevel {
		return false
	}
	b.State = BuildingUpgrading
	b.ConstructionProgress = 0
	return true
}

// TakeDamage applies damage and returns the resulting transition events.
// Destroyed is terminal: further damage is ignored.
func (b *Building) TakeDamage(amount int, source string) []Event {
	if b.State == BuildingDestroyed {
		return nil
	}
	wasOperational := b.State == BuildingOperational
	if b.ApplyDamage(amount) {
		b.State = BuildingDestroyed
		return []Event{{Kind: EventBuildingDestroyed, EntityID: b.ID, Payload: map[string]any{
			"source": source,
		}}}
	}
	if wasOperational && b.HealthFraction() < damagedThreshold {
		b.State = BuildingDamaged
		return []Event{{Kind: EventBuildingDamaged, EntityID: b.ID, Payload: map[string]any{
			"source": source,
			"health": b.Health,
		}}}
	}
	return nil
}

// Repair restores full health. A destroyed building cannot be repaired.
func (b *Building) Repair() []Event {
	if b.State == BuildingDestroyed {
		return nil
	}
	b.RestoreFullHealth()
	if b.State == BuildingDamaged {
		b.State = BuildingOperational
		return []Event{{Kind: EventBuildingRepaired, EntityID: b.ID}}
	}
	return nil
}

// Efficiency is the production multiplier: zero unless operational, otherwise
// health fraction boosted 20% per upgrade level past the first, capped at 1.
func (b *Building) Efficiency() float64 {
	if b.State != BuildingOperational {
		return 0
	}
	e := b.HealthFraction() * (1 + 0.2*float64(b.UpgradeLevel-1))
	if e > 1 {
		return 1
	}
	return e
}

type BuildingSnapshot struct {
	Entity               EntitySnapshot `json:"entity"`
	Type                 string         `json:"type"`
	State                BuildingState  `json:"state"`
	GridPos              world.Point    `json:"grid_pos"`
	ConstructionTime     float64        `json:"construction_time"`
	ConstructionProgress float64        `json:"construction_progress"`
	UpgradeLevel         int            `json:"upgrade_level"`
	MaxUpgradeLevel      int            `json:"max_upgrade_level"`
	OperationTime        float64        `json:"operation_time"`
	Version              int64          `json:"version"`
}

func (b *Building) Snapshot() BuildingSnapshot {
	return BuildingSnapshot{
		Entity:               b.Entity.Snapshot(),
		Type:                 b.Type,
		State:                b.State,
		GridPos:              b.GridPos,
		ConstructionTime:     b.ConstructionTime,
		ConstructionProgress: b.ConstructionProgress,
		UpgradeLevel:         b.UpgradeLevel,
		MaxUpgradeLevel:      b.MaxUpgradeLevel,
		OperationTime:        b.OperationTime,
	}
}

func RestoreBuilding(s BuildingSnapshot) *Building {
	return &Building{
		Entity:               restoreEntity(s.Entity),
		Type:                 s.Type,
		State:                s.State,
		GridPos:              s.GridPos,
		ConstructionTime:     s.ConstructionTime,
		ConstructionProgress: s.ConstructionProgress,
		UpgradeLevel:         s.UpgradeLevel,
		MaxUpgradeLevel:      s.MaxUpgradeLevel,
		OperationTime:        s.OperationTime,
	}
}
