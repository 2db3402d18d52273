package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"transportgame/internal/app/ports"
	"transportgame/internal/app/replay"
	"transportgame/internal/app/simulate"
	"transportgame/internal/app/status"
	"transportgame/internal/app/worldgen"
	"transportgame/internal/domain/industry"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	StatusUC   status.UseCase
	SimUC      *simulate.UseCase
	WorldgenUC *worldgen.UseCase
	ReplayUC   replay.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	s.GET("/api/world", h.world)
	s.GET("/api/world/industries", h.industries)
	s.GET("/api/world/industries/at", h.industryAt)
	s.POST("/api/world/generate", h.generate)

	s.GET("/api/buildings", h.listBuildings)
	s.GET("/api/buildings/:id", h.getBuilding)
	s.GET("/api/trains", h.listTrains)
	s.GET("/api/trains/:id", h.getTrain)
	s.POST("/api/sim/command", h.command)
	s.GET("/api/entities/:id/events", h.events)
	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) world(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.StatusUC.World(c))
}

func (h Handler) industries(c context.Context, ctx *app.RequestContext) {
	views := h.StatusUC.ListIndustries(c)
	if views == nil {
		views = []status.IndustryView{}
	}
	ctx.JSON(consts.StatusOK, views)
}

func (h Handler) industryAt(c context.Context, ctx *app.RequestContext) {
	x, errX := strconv.Atoi(string(ctx.Query("x")))
	y, errY := strconv.Atoi(string(ctx.Query("y")))
	if errX != nil || errY != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_coordinates", "x and y must be integers")
		return
	}
	view, ok := h.StatusUC.IndustryAtGrid(c, x, y)
	if !ok {
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", "no industry at position")
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

type generateResponse struct {
	PlacedByType map[string]int `json:"placed_by_type"`
	Attempts     int            `json:"attempts"`
	Adopted      int            `json:"adopted"`
}

// generate rebuilds the industry layout and, when a simulation is attached,
// hands the placed buildings over to it. Adopted counts the buildings that
// were actually registered; repeated calls adopt only what is new.
func (h Handler) generate(c context.Context, ctx *app.RequestContext) {
	if h.WorldgenUC == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "world generator not configured")
		return
	}
	report, err := h.WorldgenUC.Generate(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp := generateResponse{PlacedByType: report.PlacedByType, Attempts: report.Attempts}
	if h.SimUC != nil {
		adopted, err := h.SimUC.AdoptIndustries(c, h.WorldgenUC.Industries())
		if err != nil {
			writeError(ctx, err)
			return
		}
		resp.Adopted = adopted
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listBuildings(c context.Context, ctx *app.RequestContext) {
	views, err := h.StatusUC.ListBuildings(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if views == nil {
		views = []status.BuildingView{}
	}
	ctx.JSON(consts.StatusOK, views)
}

func (h Handler) getBuilding(c context.Context, ctx *app.RequestContext) {
	view, err := h.StatusUC.GetBuilding(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) listTrains(c context.Context, ctx *app.RequestContext) {
	views, err := h.StatusUC.ListTrains(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if views == nil {
		views = []status.TrainView{}
	}
	ctx.JSON(consts.StatusOK, views)
}

func (h Handler) getTrain(c context.Context, ctx *app.RequestContext) {
	view, err := h.StatusUC.GetTrain(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) command(c context.Context, ctx *app.RequestContext) {
	if h.SimUC == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "simulation not configured")
		return
	}
	var cmd simulate.Command
	if err := decodeJSON(ctx, &cmd); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	result, err := h.SimUC.Apply(c, cmd)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, result)
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		EntityID: ctx.Param("id"),
		Limit:    limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, simulate.ErrUnknownCommand):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_command", err.Error())
	case errors.Is(err, simulate.ErrInvalidEntity),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, worldgen.ErrMissingDependency),
		errors.Is(err, industry.ErrMissingDependency):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error":   code,
		"message": message,
	})
}
