package inmemory

import "sync"

type Snapshot struct {
	TickTotal      uint64            `json:"tick_total"`
	EntitiesLast   int               `json:"entities_last"`
	EventTotal     uint64            `json:"event_total"`
	ConflictTotal  uint64            `json:"conflict_total"`
	PlacementsBy   map[string]uint64 `json:"placements_by_type"`
	ShortfallsBy   map[string]uint64 `json:"shortfalls_by_type"`
	PlacementTotal uint64            `json:"placement_total"`
	ShortfallTotal uint64            `json:"shortfall_total"`
}

type Recorder struct {
	mu         sync.Mutex
	ticks      uint64
	lastCount  int
	events     uint64
	conflicts  uint64
	placements map[string]uint64
	shortfalls map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		placements: map[string]uint64{},
		shortfalls: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(entities int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.lastCount = entities
}

func (r *Recorder) RecordEvents(count int) {
	if count <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events += uint64(count)
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts++
}

func (r *Recorder) RecordPlacement(industryType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placements[industryType]++
}

func (r *Recorder) RecordShortfall(industryType string, missing int) {
	if missing <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shortfalls[industryType] += uint64(missing)
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickTotal:     r.ticks,
		EntitiesLast:  r.lastCount,
		EventTotal:    r.events,
		ConflictTotal: r.conflicts,
		PlacementsBy:  make(map[string]uint64, len(r.placements)),
		ShortfallsBy:  make(map[string]uint64, len(r.shortfalls)),
	}
	for k, v := range r.placements {
		out.PlacementsBy[k] = v
		out.PlacementTotal += v
	}
	for k, v := range r.shortfalls {
		out.ShortfallsBy[k] = v
		out.ShortfallTotal += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
