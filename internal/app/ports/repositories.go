package ports

import (
	"context"

	"transportgame/internal/domain/sim"
)

type BuildingStateRepository interface {
	GetByID(ctx context.Context, id string) (sim.BuildingSnapshot, error)
	List(ctx context.Context) ([]sim.BuildingSnapshot, error)
	SaveWithVersion(ctx context.Context, snapshot sim.BuildingSnapshot, expectedVersion int64) error
}

type TrainStateRepository interface {
	GetByID(ctx context.Context, id string) (sim.TrainSnapshot, error)
	List(ctx context.Context) ([]sim.TrainSnapshot, error)
	SaveWithVersion(ctx context.Context, snapshot sim.TrainSnapshot, expectedVersion int64) error
}

type EventRepository interface {
	Append(ctx context.Context, entityID string, events []sim.Event) error
	ListByEntityID(ctx context.Context, entityID string, limit int) ([]sim.Event, error)
}
