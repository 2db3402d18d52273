package simulate

import (
	"context"
	"errors"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"
)

type CommandType string

const (
	CommandDamageBuilding    CommandType = "damage_building"
	CommandRepairBuilding    CommandType = "repair_building"
	CommandUpgradeBuilding   CommandType = "upgrade_building"
	CommandStartConstruction CommandType = "start_construction"
	CommandSetRoute          CommandType = "set_route"
	CommandAddWaypoint       CommandType = "add_waypoint"
	CommandClearRoute        CommandType = "clear_route"
	CommandLoadCargo         CommandType = "load_cargo"
	CommandUnloadCargo       CommandType = "unload_cargo"
	CommandUnloadAllCargo    CommandType = "unload_all_cargo"
	CommandStartLoading      CommandType = "start_loading"
	CommandStartUnloading    CommandType = "start_unloading"
)

type Command struct {
	Type      CommandType `json:"type"`
	EntityID  string      `json:"entity_id"`
	Amount    int         `json:"amount,omitempty"`
	Resource  string      `json:"resource,omitempty"`
	Source    string      `json:"source,omitempty"`
	Waypoints []sim.Vec2  `json:"waypoints,omitempty"`
}

// Result reports how a command landed. Applied is false for disallowed
// transitions (a rejected upgrade, loading while moving); Amount carries the
// actual cargo moved for the cargo commands.
type Result struct {
	Applied bool        `json:"applied"`
	Amount  int         `json:"amount,omitempty"`
	Events  []sim.Event `json:"events,omitempty"`
}

// Apply runs a single command against a live entity, then persists the
// entity's snapshot and any fired events.
func (u *UseCase) Apply(ctx context.Context, cmd Command) (Result, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch cmd.Type {
	case CommandDamageBuilding, CommandRepairBuilding, CommandUpgradeBuilding, CommandStartConstruction:
		return u.applyBuildingCommand(ctx, cmd)
	case CommandSetRoute, CommandAddWaypoint, CommandClearRoute,
		CommandLoadCargo, CommandUnloadCargo, CommandUnloadAllCargo,
		CommandStartLoading, CommandStartUnloading:
		return u.applyTrainCommand(ctx, cmd)
	default:
		return Result{}, ErrUnknownCommand
	}
}

func (u *UseCase) applyBuildingCommand(ctx context.Context, cmd Command) (Result, error) {
	entry, ok := u.buildings[cmd.EntityID]
	if !ok {
		return Result{}, ports.ErrNotFound
	}
	b := entry.building

	result := Result{Applied: true}
	switch cmd.Type {
	case CommandDamageBuilding:
		result.Events = b.TakeDamage(cmd.Amount, cmd.Source)
	case CommandRepairBuilding:
		result.Events = b.Repair()
		result.Applied = b.State != sim.BuildingDestroyed
	case CommandUpgradeBuilding:
		result.Applied = b.StartUpgrade()
	case CommandStartConstruction:
		b.StartConstruction()
	}

	if err := u.persistCommand(ctx, cmd.EntityID, &result, func(txCtx context.Context) error {
		return u.persistBuildingLocked(txCtx, entry)
	}); err != nil {
		return Result{}, err
	}
	entry.version++
	return result, nil
}

func (u *UseCase) applyTrainCommand(ctx context.Context, cmd Command) (Result, error) {
	entry, ok := u.trains[cmd.EntityID]
	if !ok {
		return Result{}, ports.ErrNotFound
	}
	t := entry.train

	result := Result{Applied: true}
	switch cmd.Type {
	case CommandSetRoute:
		t.SetRoute(cmd.Waypoints)
	case CommandAddWaypoint:
		if len(cmd.Waypoints) == 0 {
			return Result{}, ErrUnknownCommand
		}
		for _, wp := range cmd.Waypoints {
			t.AddWaypoint(wp)
		}
	case CommandClearRoute:
		t.ClearRoute()
	case CommandLoadCargo:
		result.Amount = t.LoadCargo(cmd.Resource, cmd.Amount)
	case CommandUnloadCargo:
		result.Amount = t.UnloadCargo(cmd.Resource, cmd.Amount)
	case CommandUnloadAllCargo:
		result.Amount = t.UnloadAllCargo(cmd.Resource)
	case CommandStartLoading:
		result.Applied = t.StartLoading()
	case CommandStartUnloading:
		result.Applied = t.StartUnloading()
	}

	if err := u.persistCommand(ctx, cmd.EntityID, &result, func(txCtx context.Context) error {
		return u.persistTrainLocked(txCtx, entry)
	}); err != nil {
		return Result{}, err
	}
	entry.version++
	return result, nil
}

func (u *UseCase) persistCommand(ctx context.Context, entityID string, result *Result, persist func(ctx context.Context) error) error {
	now := u.now()
	for i := range result.Events {
		result.Events[i].OccurredAt = now
	}
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		if err := persist(txCtx); err != nil {
			return err
		}
		if len(result.Events) > 0 && u.EventRepo != nil {
			return u.EventRepo.Append(txCtx, entityID, result.Events)
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil && errors.Is(err, ports.ErrConflict) {
			u.Metrics.RecordConflict()
		}
		return err
	}
	if u.Metrics != nil && len(result.Events) > 0 {
		u.Metrics.RecordEvents(len(result.Events))
	}
	return nil
}
