package replay

import (
	"context"
	"errors"
	"strings"

	"transportgame/internal/app/ports"
	"transportgame/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultLimit = 50

type Request struct {
	EntityID string
	Limit    int
}

type Response struct {
	EntityID string      `json:"entity_id"`
	Events   []sim.Event `json:"events"`
}

type UseCase struct {
	Events ports.EventRepository
}

// Execute lists the persisted events for one entity, most recent first.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.EntityID = strings.TrimSpace(req.EntityID)
	if req.EntityID == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	events, err := u.Events.ListByEntityID(ctx, req.EntityID, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{EntityID: req.EntityID, Events: events}, nil
}
