package simulate

import (
	"context"
	"errors"
	"sync"
	"time"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/industry"
	"transportgame/internal/domain/sim"
)

var (
	ErrInvalidEntity  = errors.New("invalid entity")
	ErrUnknownCommand = errors.New("unknown command")
)

// UseCase owns the live entity registry. All entity updates run on a single
// logical update path: Tick and Apply serialize on the internal mutex, so each
// Building/Train instance is mutated by exactly one caller at a time.
type UseCase struct {
	TxManager    ports.TxManager
	BuildingRepo ports.BuildingStateRepository
	TrainRepo    ports.TrainStateRepository
	EventRepo    ports.EventRepository
	Metrics      ports.SimMetrics
	Feed         ports.TickBroadcaster
	Now          func() time.Time

	mu            sync.Mutex
	buildings     map[string]*liveBuilding
	trains        map[string]*liveTrain
	buildingOrder []string
	trainOrder    []string
	tick          int64
	simTime       float64
}

type liveBuilding struct {
	building *sim.Building
	version  int64
}

type liveTrain struct {
	train   *sim.Train
	version int64
}

type TickResult struct {
	Tick     int64
	Entities int
	Events   []sim.Event
}

func (u *UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u *UseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.TxManager == nil {
		return fn(ctx)
	}
	return u.TxManager.RunInTx(ctx, fn)
}

// AddBuilding registers a building with the tick loop and persists its
// initial snapshot.
func (u *UseCase) AddBuilding(ctx context.Context, b *sim.Building) error {
	if b == nil || b.ID == "" {
		return ErrInvalidEntity
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.addBuildingLocked(ctx, b)
}

func (u *UseCase) addBuildingLocked(ctx context.Context, b *sim.Building) error {
	if u.buildings == nil {
		u.buildings = map[string]*liveBuilding{}
	}
	if _, exists := u.buildings[b.ID]; exists {
		return ports.ErrConflict
	}
	snap := b.Snapshot()
	snap.Version = 1
	if err := u.runInTx(ctx, func(txCtx context.Context) error {
		return u.BuildingRepo.SaveWithVersion(txCtx, snap, 0)
	}); err != nil {
		return err
	}
	u.buildings[b.ID] = &liveBuilding{building: b, version: 1}
	u.buildingOrder = append(u.buildingOrder, b.ID)
	return nil
}

// AddTrain registers a train with the tick loop and persists its initial
// snapshot.
func (u *UseCase) AddTrain(ctx context.Context, t *sim.Train) error {
	if t == nil || t.ID == "" {
		return ErrInvalidEntity
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.trains == nil {
		u.trains = map[string]*liveTrain{}
	}
	if _, exists := u.trains[t.ID]; exists {
		return ports.ErrConflict
	}
	snap := t.Snapshot()
	snap.Version = 1
	if err := u.runInTx(ctx, func(txCtx context.Context) error {
		return u.TrainRepo.SaveWithVersion(txCtx, snap, 0)
	}); err != nil {
		return err
	}
	u.trains[t.ID] = &liveTrain{train: t, version: 1}
	u.trainOrder = append(u.trainOrder, t.ID)
	return nil
}

// AdoptIndustries hands generated, already-operational industries over to the
// simulation; from then on they follow the standard building state machine.
// IDs that are already registered (or already persisted) are skipped, so
// regeneration and restarts adopt only what is genuinely new. Returns the
// number of industries adopted.
func (u *UseCase) AdoptIndustries(ctx context.Context, placed []industry.Placed) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	adopted := 0
	for _, p := range placed {
		if p.Building == nil || p.Building.ID == "" {
			return adopted, ErrInvalidEntity
		}
		if _, exists := u.buildings[p.Building.ID]; exists {
			continue
		}
		if err := u.addBuildingLocked(ctx, p.Building); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				continue
			}
			return adopted, err
		}
		adopted++
	}
	return adopted, nil
}

// LoadPersisted registers every stored snapshot that is not already live,
// keeping its stored version. A restarted server resumes from its own rows
// instead of re-inserting them.
func (u *UseCase) LoadPersisted(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.buildings == nil {
		u.buildings = map[string]*liveBuilding{}
	}
	if u.trains == nil {
		u.trains = map[string]*liveTrain{}
	}

	loaded := 0
	buildings, err := u.BuildingRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, snap := range buildings {
		if _, exists := u.buildings[snap.Entity.ID]; exists {
			continue
		}
		u.buildings[snap.Entity.ID] = &liveBuilding{building: sim.RestoreBuilding(snap), version: snap.Version}
		u.buildingOrder = append(u.buildingOrder, snap.Entity.ID)
		loaded++
	}

	trains, err := u.TrainRepo.List(ctx)
	if err != nil {
		return loaded, err
	}
	for _, snap := range trains {
		if _, exists := u.trains[snap.Entity.ID]; exists {
			continue
		}
		u.trains[snap.Entity.ID] = &liveTrain{train: sim.RestoreTrain(snap), version: snap.Version}
		u.trainOrder = append(u.trainOrder, snap.Entity.ID)
		loaded++
	}
	return loaded, nil
}

// Tick advances every live entity by dt seconds, persists the resulting
// snapshots and appends the fired events. Each entity is advanced exactly
// once per call.
func (u *UseCase) Tick(ctx context.Context, dt float64) (TickResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.tick++
	u.simTime += dt
	now := u.now()
	result := TickResult{Tick: u.tick}

	var savedBuildings []*liveBuilding
	var savedTrains []*liveTrain
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		for _, id := range u.buildingOrder {
			entry := u.buildings[id]
			events := entry.building.Advance(dt)
			if err := u.persistBuildingLocked(txCtx, entry); err != nil {
				return err
			}
			savedBuildings = append(savedBuildings, entry)
			if err := u.appendEvents(txCtx, id, now, events, &result); err != nil {
				return err
			}
			result.Entities++
		}
		for _, id := range u.trainOrder {
			entry := u.trains[id]
			events := entry.train.Advance(dt)
			if err := u.persistTrainLocked(txCtx, entry); err != nil {
				return err
			}
			savedTrains = append(savedTrains, entry)
			if err := u.appendEvents(txCtx, id, now, events, &result); err != nil {
				return err
			}
			result.Entities++
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil && errors.Is(err, ports.ErrConflict) {
			u.Metrics.RecordConflict()
		}
		return TickResult{}, err
	}

	// A rollback reverts the stored rows, so the live version counters move
	// only after the transaction has committed.
	for _, entry := range savedBuildings {
		entry.version++
	}
	for _, entry := range savedTrains {
		entry.version++
	}

	if u.Metrics != nil {
		u.Metrics.RecordTick(result.Entities)
		u.Metrics.RecordEvents(len(result.Events))
	}
	if u.Feed != nil {
		u.Feed.BroadcastTick(ports.TickFrame{
			Tick:       u.tick,
			DeltaTime:  dt,
			SimTime:    u.simTime,
			Buildings:  len(u.buildingOrder),
			Trains:     len(u.trainOrder),
			EventCount: len(result.Events),
		})
	}
	return result, nil
}

// persistBuildingLocked writes the snapshot at version+1. Callers bump
// entry.version themselves once the enclosing transaction has committed.
func (u *UseCase) persistBuildingLocked(ctx context.Context, entry *liveBuilding) error {
	snap := entry.building.Snapshot()
	snap.Version = entry.version + 1
	return u.BuildingRepo.SaveWithVersion(ctx, snap, entry.version)
}

func (u *UseCase) persistTrainLocked(ctx context.Context, entry *liveTrain) error {
	snap := entry.train.Snapshot()
	snap.Version = entry.version + 1
	return u.TrainRepo.SaveWithVersion(ctx, snap, entry.version)
}

func (u *UseCase) appendEvents(ctx context.Context, entityID string, now time.Time, events []sim.Event, result *TickResult) error {
	if len(events) == 0 {
		return nil
	}
	for i := range events {
		events[i].OccurredAt = now
	}
	if u.EventRepo != nil {
		if err := u.EventRepo.Append(ctx, entityID, events); err != nil {
			return err
		}
	}
	result.Events = append(result.Events, events...)
	return nil
}
