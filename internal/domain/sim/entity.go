package sim

type EntityKind string

const (
	KindBuilding EntityKind = "building"
	KindTrain    EntityKind = "train"
	KindResource EntityKind = "resource"
	KindUI       EntityKind = "ui"
	KindTile     EntityKind = "tile"
)

// Entity holds the lifecycle fields shared by every simulated object.
// Each instance is owned by exactly one collaborator and is advanced at most
// once per tick by that owner.
type Entity struct {
	ID        string
	Kind      EntityKind
	Position  Vec2
	MaxHealth int
	Health    int
	Active    bool
}

// ApplyDamage reduces health, clamped at zero, and reports whether the entity
// just reached zero health.
func (e *Entity) ApplyDamage(amount int) bool {
	if amount <= 0 || e.Health <= 0 {
		return false
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		return true
	}
	return false
}

func (e *Entity) RestoreFullHealth() {
	e.Health = e.MaxHealth
}

func (e Entity) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

type EntitySnapshot struct {
	ID        string     `json:"id"`
	Kind      EntityKind `json:"kind"`
	Position  Vec2       `json:"position"`
	MaxHealth int        `json:"max_health"`
	Health    int        `json:"health"`
	Active    bool       `json:"active"`
}

func (e Entity) Snapshot() EntitySnapshot {
	return EntitySnapshot{
		ID:        e.ID,
		Kind:      e.Kind,
		Position:  e.Position,
		MaxHealth: e.MaxHealth,
		Health:    e.Health,
		Active:    e.Active,
	}
}

func restoreEntity(s EntitySnapshot) Entity {
	return Entity{
		ID:        s.ID,
		Kind:      s.Kind,
		Position:  s.Position,
		MaxHealth: s.MaxHealth,
		Health:    s.Health,
		Active:    s.Active,
	}
}
