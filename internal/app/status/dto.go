package status

import (
	"time"

	"transportgame/internal/domain/sim"
	"transportgame/internal/domain/world"
)

// Display projections of simulation state, consumed by the HTTP adapter.
// They expose state, progress, cargo and position read-only.

type BuildingView struct {
	ID                   string      `json:"id"`
	Type                 string      `json:"type"`
	State                string      `json:"state"`
	GridPos              world.Point `json:"grid_pos"`
	Position             sim.Vec2    `json:"position"`
	Health               int         `json:"health"`
	MaxHealth            int         `json:"max_health"`
	ConstructionProgress float64     `json:"construction_progress"`
	UpgradeLevel         int         `json:"upgrade_level"`
	MaxUpgradeLevel      int         `json:"max_upgrade_level"`
	OperationTime        float64     `json:"operation_time"`
	Efficiency           float64     `json:"efficiency"`
}

type TrainView struct {
	ID               string         `json:"id"`
	State            string         `json:"state"`
	Position         sim.Vec2       `json:"position"`
	Speed            float64        `json:"speed"`
	Cargo            map[string]int `json:"cargo"`
	CargoTotal       int            `json:"cargo_total"`
	CargoCapacity    int            `json:"cargo_capacity"`
	CargoFull        bool           `json:"cargo_full"`
	Route            []sim.Vec2     `json:"route"`
	RouteIndex       int            `json:"route_index"`
	MovementProgress float64        `json:"movement_progress"`
	LoadingProgress  float64        `json:"loading_progress"`
}

type IndustryView struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Anchor   world.Point `json:"anchor"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	PlacedAt time.Time   `json:"placed_at"`
	State    string      `json:"state"`
}

type WorldView struct {
	Size       world.Size `json:"size"`
	Industries int        `json:"industries"`
}
