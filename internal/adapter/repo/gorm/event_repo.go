package gormrepo

import (
	"context"
	"encoding/json"

	"transportgame/internal/adapter/repo/gorm/model"
	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, entityID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.SimEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.SimEvent{
			EntityID:   entityID,
			Type:       string(e.Kind),
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByEntityID(ctx context.Context, entityID string, limit int) ([]sim.Event, error) {
	rows := []model.SimEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.SimEvent{EntityID: entityID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]sim.Event, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, sim.Event{
			Kind:       sim.EventKind(row.Type),
			EntityID:   row.EntityID,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
