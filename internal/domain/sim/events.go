package sim

import "time"

type EventKind string

const (
	EventConstructionCompleted EventKind = "construction_completed"
	EventUpgradeCompleted      EventKind = "upgrade_completed"
	EventBuildingDamaged       EventKind = "building_damaged"
	EventBuildingRepaired      EventKind = "building_repaired"
	EventBuildingDestroyed     EventKind = "building_destroyed"
	EventRouteCompleted        EventKind = "route_completed"
	EventLoadingCompleted      EventKind = "loading_completed"
	EventUnloadingCompleted    EventKind = "unloading_completed"
)

// Event is the value form of a state-machine completion hook. State machines
// return events from their mutating calls; the owning layer stamps OccurredAt
// and dispatches them. There is no listener requirement.
type Event struct {
	Kind       EventKind      `json:"kind"`
	EntityID   string         `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}
