package sim

import "testing"

func newTestTrain() *Train {
	return NewTrain("t-1", Vec2{}, 5, 50, 4, 200)
}

func TestTrainRouteTraversalDeterminism(t *testing.T) {
	tr := newTestTrain()
	tr.SetRoute([]Vec2{{X: 10, Y: 0}, {X: 10, Y: 10}})
	if tr.State != TrainMoving {
		t.Fatalf("SetRoute must start movement, got %s", tr.State)
	}

	// speed 5, legs of length 10: two ticks per leg.
	var events []Event
	for i := 0; i < 4; i++ {
		events = append(events, tr.Advance(1)...)
	}

	if tr.State != TrainIdle {
		t.Fatalf("expected idle after route, got %s", tr.State)
	}
	if tr.RouteIndex != 2 {
		t.Fatalf("expected route index 2, got %d", tr.RouteIndex)
	}
	if tr.Position != (Vec2{X: 10, Y: 10}) {
		t.Fatalf("expected final position (10,10), got %+v", tr.Position)
	}
	if len(events) != 1 || events[0].Kind != EventRouteCompleted {
		t.Fatalf("expected one route_completed event, got %v", events)
	}
}

func TestTrainInterpolatesAlongLeg(t *testing.T) {
	tr := newTestTrain()
	tr.SetRoute([]Vec2{{X: 10, Y: 0}})
	tr.Advance(1)
	if tr.Position != (Vec2{X: 5, Y: 0}) {
		t.Fatalf("expected midpoint (5,0), got %+v", tr.Position)
	}
	tr.Advance(1)
	if tr.Position != (Vec2{X: 10, Y: 0}) {
		t.Fatalf("expected snap to waypoint (10,0), got %+v", tr.Position)
	}
}

func TestTrainNearZeroLegArrivesImmediately(t *testing.T) {
	tr := newTestTrain()
	tr.SetRoute([]Vec2{{X: 0.05, Y: 0}})
	events := tr.Advance(1)
	if tr.State != TrainIdle {
		t.Fatalf("expected idle after epsilon leg, got %s", tr.State)
	}
	if tr.Position != (Vec2{X: 0.05, Y: 0}) {
		t.Fatalf("expected snap to target, got %+v", tr.Position)
	}
	if len(events) != 1 || events[0].Kind != EventRouteCompleted {
		t.Fatalf("expected route_completed, got %v", events)
	}
}

func TestTrainAddWaypointStartsIdleTrain(t *testing.T) {
	tr := newTestTrain()
	tr.AddWaypoint(Vec2{X: 10, Y: 0})
	if tr.State != TrainMoving {
		t.Fatalf("first waypoint on idle train must start movement, got %s", tr.State)
	}
	tr.AddWaypoint(Vec2{X: 20, Y: 0})
	if len(tr.Route) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(tr.Route))
	}
}

func TestTrainIdleTickResumesQueuedRoute(t *testing.T) {
	tr := newTestTrain()
	tr.Route = []Vec2{{X: 10, Y: 0}}
	tr.Advance(1)
	if tr.State != TrainMoving {
		t.Fatalf("idle tick with queued waypoints must resume movement, got %s", tr.State)
	}
}

func TestTrainClearRouteStopsMovement(t *testing.T) {
	tr := newTestTrain()
	tr.SetRoute([]Vec2{{X: 10, Y: 0}})
	tr.Advance(1)
	tr.ClearRoute()
	if tr.State != TrainIdle {
		t.Fatalf("expected idle after ClearRoute, got %s", tr.State)
	}
	if len(tr.Route) != 0 || tr.RouteIndex != 0 {
		t.Fatalf("expected empty route, got %v index %d", tr.Route, tr.RouteIndex)
	}
}

func TestTrainCargoCapacityClamping(t *testing.T) {
	tr := newTestTrain()

	if got := tr.LoadCargo("iron", 80); got != 50 {
		t.Fatalf("expected 50 loaded, got %d", got)
	}
	if tr.Cargo["iron"] != 50 {
		t.Fatalf("expected iron=50, got %d", tr.Cargo["iron"])
	}
	if !tr.IsCargoFull() {
		t.Fatalf("expected full cargo")
	}
	if got := tr.LoadCargo("iron", 10); got != 0 {
		t.Fatalf("expected 0 loaded when full, got %d", got)
	}

	if got := tr.UnloadCargo("iron", 30); got != 30 {
		t.Fatalf("expected 30 unloaded, got %d", got)
	}
	if got := tr.UnloadCargo("iron", 100); got != 20 {
		t.Fatalf("expected remaining 20 unloaded, got %d", got)
	}
	if got := tr.UnloadCargo("iron", 5); got != 0 {
		t.Fatalf("expected 0 from empty ledger, got %d", got)
	}
	if tr.TotalCargo() != 0 {
		t.Fatalf("expected empty cargo, got %d", tr.TotalCargo())
	}
}

func TestTrainCargoNeverNegativeOrOverCapacity(t *testing.T) {
	tr := newTestTrain()
	if got := tr.LoadCargo("coal", -5); got != 0 {
		t.Fatalf("negative load must return 0, got %d", got)
	}
	if got := tr.UnloadCargo("coal", -5); got != 0 {
		t.Fatalf("negative unload must return 0, got %d", got)
	}
	tr.LoadCargo("coal", 20)
	tr.LoadCargo("grain", 40)
	if total := tr.TotalCargo(); total > tr.CargoCapacity {
		t.Fatalf("cargo sum %d exceeds capacity %d", total, tr.CargoCapacity)
	}
}

func TestTrainUnloadAllCargo(t *testing.T) {
	tr := newTestTrain()
	tr.LoadCargo("grain", 25)
	if got := tr.UnloadAllCargo("grain"); got != 25 {
		t.Fatalf("expected prior amount 25, got %d", got)
	}
	if got := tr.UnloadAllCargo("grain"); got != 0 {
		t.Fatalf("expected 0 on second unload, got %d", got)
	}
}

func TestTrainLoadingRejectedWhileMoving(t *testing.T) {
	tr := newTestTrain()
	tr.SetRoute([]Vec2{{X: 10, Y: 0}})
	if tr.StartLoading() {
		t.Fatalf("loading must be rejected while moving")
	}
	if tr.StartUnloading() {
		t.Fatalf("unloading must be rejected while moving")
	}
	if tr.State != TrainMoving {
		t.Fatalf("rejected transfer must not change state, got %s", tr.State)
	}
}

func TestTrainLoadingCompletes(t *testing.T) {
	tr := newTestTrain()
	if !tr.StartLoading() {
		t.Fatalf("loading must be accepted while idle")
	}
	var events []Event
	for i := 0; i < 4; i++ {
		events = append(events, tr.Advance(1)...)
	}
	if tr.State != TrainIdle {
		t.Fatalf("expected idle after loading, got %s", tr.State)
	}
	if tr.LoadingProgress != 1 {
		t.Fatalf("expected progress clamped to 1, got %f", tr.LoadingProgress)
	}
	if len(events) != 1 || events[0].Kind != EventLoadingCompleted {
		t.Fatalf("expected loading_completed, got %v", events)
	}
}

func TestTrainUnloadingCompletes(t *testing.T) {
	tr := newTestTrain()
	if !tr.StartUnloading() {
		t.Fatalf("unloading must be accepted while idle")
	}
	events := tr.Advance(10)
	if tr.State != TrainIdle {
		t.Fatalf("expected idle after unloading, got %s", tr.State)
	}
	if len(events) != 1 || events[0].Kind != EventUnloadingCompleted {
		t.Fatalf("expected unloading_completed, got %v", events)
	}
}

func TestTrainSnapshotRoundTrip(t *testing.T) {
	tr := newTestTrain()
	tr.SetRoute([]Vec2{{X: 10, Y: 0}, {X: 10, Y: 10}})
	tr.Advance(1)
	tr.LoadCargo("iron", 12)

	restored := RestoreTrain(tr.Snapshot())
	if restored.State != tr.State || restored.RouteIndex != tr.RouteIndex {
		t.Fatalf("state mismatch: got %s/%d want %s/%d", restored.State, restored.RouteIndex, tr.State, tr.RouteIndex)
	}
	if restored.Position != tr.Position || restored.TargetPosition != tr.TargetPosition || restored.PreviousPosition != tr.PreviousPosition {
		t.Fatalf("position mismatch: got %+v want %+v", restored, tr)
	}
	if restored.MovementProgress != tr.MovementProgress || restored.LoadingProgress != tr.LoadingProgress {
		t.Fatalf("progress mismatch")
	}
	if restored.Cargo["iron"] != 12 || len(restored.Route) != 2 {
		t.Fatalf("cargo/route mismatch: %+v", restored)
	}

	// Route and cargo are owned values, not shared references.
	restored.Route[0] = Vec2{X: 99, Y: 99}
	restored.Cargo["iron"] = 0
	if tr.Route[0] == (Vec2{X: 99, Y: 99}) || tr.Cargo["iron"] != 12 {
		t.Fatalf("snapshot must deep-copy route and cargo")
	}
}
