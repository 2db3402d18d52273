package sim

type TrainState string

const (
	TrainIdle      TrainState = "idle"
	TrainMoving    TrainState = "moving"
	TrainLoading   TrainState = "loading"
	TrainUnloading TrainState = "unloading"
	// TrainBroken is reserved for external fault injection; no core transition
	// reaches it.
	TrainBroken TrainState = "broken"
)

// Legs shorter than this are treated as already arrived, guarding the
// progress division against near-zero distances.
const legEpsilon = 0.1

type Train struct {
	Entity

	State            TrainState
	Speed            float64
	CargoCapacity    int
	Cargo            map[string]int
	Route            []Vec2
	RouteIndex       int
	TargetPosition   Vec2
	PreviousPosition Vec2
	MovementProgress float64
	LoadingTime      float64
	LoadingProgress  float64
}

func NewTrain(id string, position Vec2, speed float64, cargoCapacity int, loadingSeconds float64, maxHealth int) *Train {
	return &Train{
		Entity: Entity{
			ID:        id,
			Kind:      KindTrain,
			Position:  position,
			MaxHealth: maxHealth,
			Health:    maxHealth,
			Active:    true,
		},
		State:         TrainIdle,
		Speed:         speed,
		CargoCapacity: cargoCapacity,
		Cargo:         map[string]int{},
		LoadingTime:   loadingSeconds,
	}
}

// SetRoute replaces the route wholesale and begins moving toward the first
// waypoint if one exists.
func (t *Train) SetRoute(points []Vec2) {
	t.Route = append([]Vec2(nil), points...)
	t.RouteIndex = 0
	t.MovementProgress = 0
	if len(t.Route) > 0 {
		t.beginLeg()
		return
	}
	if t.State == TrainMoving {
		t.State = TrainIdle
	}
}

// AddWaypoint appends to the route; an idle train starts moving right away.
func (t *Train) AddWaypoint(point Vec2) {
	t.Route = append(t.Route, point)
	if t.State == TrainIdle && t.RouteIndex < len(t.Route) {
		t.beginLeg()
	}
}

func (t *Train) ClearRoute() {
	t.Route = nil
	t.RouteIndex = 0
	t.MovementProgress = 0
	if t.State == TrainMoving {
		t.State = TrainIdle
	}
}

func (t *Train) beginLeg() {
	t.PreviousPosition = t.Position
	t.TargetPosition = t.Route[t.RouteIndex]
	t.MovementProgress = 0
	t.State = TrainMoving
}

// Advance drives the state machine by dt seconds.
func (t *Train) Advance(dt float64) []Event {
	if dt <= 0 {
		return nil
	}
	switch t.State {
	case TrainIdle:
		// A route queued while idle resumes movement on the next tick.
		if t.RouteIndex < len(t.Route) {
			t.beginLeg()
		}
	case TrainMoving:
		return t.advanceLeg(dt)
	case TrainLoading:
		return t.advanceTransfer(dt, EventLoadingCompleted)
	case TrainUnloading:
		return t.advanceTransfer(dt, EventUnloadingCompleted)
	}
	return nil
}

func (t *Train) advanceLeg(dt float64) []Event {
	distance := t.PreviousPosition.Distance(t.TargetPosition)
	if distance <= legEpsilon {
		t.Position = t.TargetPosition
		return t.waypointReached()
	}
	t.MovementProgress += (t.Speed * dt) / distance
	if t.MovementProgress >= 1 {
		t.MovementProgress = 1
		t.Position = t.TargetPosition
		return t.waypointReached()
	}
	t.Position = Lerp(t.PreviousPosition, t.TargetPosition, t.MovementProgress)
	return nil
}

func (t *Train) waypointReached() []Event {
	t.RouteIndex++
	if t.RouteIndex >= len(t.Route) {
		t.State = TrainIdle
		return []Event{{Kind: EventRouteCompleted, EntityID: t.ID, Payload: map[string]any{
			"waypoints": len(t.Route),
		}}}
	}
	t.beginLeg()
	return nil
}

func (t *Train) advanceTransfer(dt float64, completion EventKind) []Event {
	if t.LoadingTime <= 0 {
		t.LoadingProgress = 1
	} else {
		t.LoadingProgress += dt / t.LoadingTime
	}
	if t.LoadingProgress >= 1 {
		t.LoadingProgress = 1
		t.State = TrainIdle
		return []Event{{Kind: completion, EntityID: t.ID}}
	}
	return nil
}

// StartLoading is rejected while moving.
func (t *Train) StartLoading() bool {
	if t.State == TrainMoving {
		return false
	}
	t.State = TrainLoading
	t.LoadingProgress = 0
	return true
}

// StartUnloading is rejected while moving.
func (t *Train) StartUnloading() bool {
	if t.State == TrainMoving {
		return false
	}
	t.State = TrainUnloading
	t.LoadingProgress = 0
	return true
}

// LoadCargo adds up to amount of the resource, bounded by free capacity, and
// returns the amount actually added. Callers must check the return value.
func (t *Train) LoadCargo(resource string, amount int) int {
	if resource == "" || amount <= 0 {
		return 0
	}
	free := t.CargoCapacity - t.TotalCargo()
	if free <= 0 {
		return 0
	}
	if amount > free {
		amount = free
	}
	if t.Cargo == nil {
		t.Cargo = map[string]int{}
	}
	t.Cargo[resource] += amount
	return amount
}

// UnloadCargo removes up to amount of the resource and returns the amount
// actually removed.
func (t *Train) UnloadCargo(resource string, amount int) int {
	if resource == "" || amount <= 0 {
		return 0
	}
	current := t.Cargo[resource]
	if current <= 0 {
		return 0
	}
	if amount > current {
		amount = current
	}
	t.Cargo[resource] = current - amount
	return amount
}

// UnloadAllCargo empties one resource type and returns the prior amount.
func (t *Train) UnloadAllCargo(resource string) int {
	current := t.Cargo[resource]
	if current <= 0 {
		return 0
	}
	t.Cargo[resource] = 0
	return current
}

func (t *Train) TotalCargo() int {
	total := 0
	for _, amount := range t.Cargo {
		total += amount
	}
	return total
}

func (t *Train) IsCargoFull() bool {
	return t.TotalCargo() >= t.CargoCapacity
}

type TrainSnapshot struct {
	Entity           EntitySnapshot `json:"entity"`
	State            TrainState     `json:"state"`
	Speed            float64        `json:"speed"`
	CargoCapacity    int            `json:"cargo_capacity"`
	Cargo            map[string]int `json:"cargo"`
	Route            []Vec2         `json:"route"`
	RouteIndex       int            `json:"route_index"`
	TargetPosition   Vec2           `json:"target_position"`
	PreviousPosition Vec2           `json:"previous_position"`
	MovementProgress float64        `json:"movement_progress"`
	LoadingTime      float64        `json:"loading_time"`
	LoadingProgress  float64        `json:"loading_progress"`
	Version          int64          `json:"version"`
}

func (t *Train) Snapshot() TrainSnapshot {
	cargo := make(map[string]int, len(t.Cargo))
	for k, v := range t.Cargo {
		cargo[k] = v
	}
	return TrainSnapshot{
		Entity:           t.Entity.Snapshot(),
		State:            t.State,
		Speed:            t.Speed,
		CargoCapacity:    t.CargoCapacity,
		Cargo:            cargo,
		Route:            append([]Vec2(nil), t.Route...),
		RouteIndex:       t.RouteIndex,
		TargetPosition:   t.TargetPosition,
		PreviousPosition: t.PreviousPosition,
		MovementProgress: t.MovementProgress,
		LoadingTime:      t.LoadingTime,
		LoadingProgress:  t.LoadingProgress,
	}
}

func RestoreTrain(s TrainSnapshot) *Train {
	cargo := make(map[string]int, len(s.Cargo))
	for k, v := range s.Cargo {
		cargo[k] = v
	}
	return &Train{
		Entity:           restoreEntity(s.Entity),
		State:            s.State,
		Speed:            s.Speed,
		CargoCapacity:    s.CargoCapacity,
		Cargo:            cargo,
		Route:            append([]Vec2(nil), s.Route...),
		RouteIndex:       s.RouteIndex,
		TargetPosition:   s.TargetPosition,
		PreviousPosition: s.PreviousPosition,
		MovementProgress: s.MovementProgress,
		LoadingTime:      s.LoadingTime,
		LoadingProgress:  s.LoadingProgress,
	}
}
