package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"transportgame/internal/adapter/repo/memory"
	"transportgame/internal/app/ports"
	"transportgame/internal/app/replay"
	"transportgame/internal/app/simulate"
	"transportgame/internal/app/worldgen"
	"transportgame/internal/domain/industry"
	"transportgame/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ports.ErrNotFound, consts.StatusNotFound},
		{"conflict", ports.ErrConflict, consts.StatusConflict},
		{"unknown command", simulate.ErrUnknownCommand, consts.StatusBadRequest},
		{"invalid entity", simulate.ErrInvalidEntity, consts.StatusBadRequest},
		{"invalid replay", replay.ErrInvalidRequest, consts.StatusBadRequest},
		{"wrapped not found", errors.New("boom"), consts.StatusInternalServerError},
	}

	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.want {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"type":"load_cargo","entity_id":"t-1","amount":5,"resource":"coal"}`))

	var cmd simulate.Command
	if err := decodeJSON(ctx, &cmd); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	if cmd.Type != simulate.CommandLoadCargo || cmd.EntityID != "t-1" || cmd.Amount != 5 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	ctx := &app.RequestContext{}
	var cmd simulate.Command
	if err := decodeJSON(ctx, &cmd); err != nil {
		t.Fatalf("decodeJSON on empty body: %v", err)
	}
	if cmd.Type != "" {
		t.Fatalf("expected zero command, got %+v", cmd)
	}
}

func TestKPINotConfigured(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	h.kpi(nil, ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("expected 404 without a kpi provider, got %d", got)
	}
}

type stubKPI struct{}

func (stubKPI) SnapshotAny() any { return map[string]int{"tick_total": 3} }

func TestKPIServesSnapshot(t *testing.T) {
	h := Handler{KPI: stubKPI{}}
	ctx := &app.RequestContext{}
	h.kpi(nil, ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
}

func TestCommandRequiresSimulation(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	h.command(nil, ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("expected 404 without a simulation, got %d", got)
	}
}

func TestCommandRejectsMalformedJSON(t *testing.T) {
	h := Handler{SimUC: &simulate.UseCase{}}
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte("{not json"))
	h.command(nil, ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", got)
	}
}

func TestApplyCORSHeaders(t *testing.T) {
	ctx := &app.RequestContext{}
	applyCORSHeaders(ctx)
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")); got != corsAllowMethods {
		t.Fatalf("unexpected methods header: %q", got)
	}
}

type flatTerrain struct{ w, h int }

func (t flatTerrain) Size() world.Size { return world.Size{Width: t.w, Height: t.h} }
func (t flatTerrain) IsValidGridPosition(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.w && y < t.h
}
func (flatTerrain) TileType(int, int) world.TerrainTag { return world.TerrainGrass }

type farmOnlyCatalog struct{}

func (farmOnlyCatalog) Definition(typeID string) (industry.Definition, bool) {
	if typeID != "farm" {
		return industry.Definition{}, false
	}
	return industry.Definition{
		TypeID:              "farm",
		FootprintWidth:      1,
		FootprintHeight:     1,
		MaxHealth:           100,
		ConstructionSeconds: 30,
	}, true
}

func TestGenerateAdoptsOnlyNewIndustries(t *testing.T) {
	store := memory.NewStore()
	simUC := &simulate.UseCase{
		TxManager:    memory.NewTxManager(store),
		BuildingRepo: memory.NewBuildingRepo(store),
		TrainRepo:    memory.NewTrainRepo(store),
		EventRepo:    memory.NewEventRepo(store),
	}
	h := Handler{
		SimUC: simUC,
		WorldgenUC: &worldgen.UseCase{
			Terrain: flatTerrain{w: 16, h: 16},
			Catalog: farmOnlyCatalog{},
			Seed:    7,
			Classes: []industry.Class{{
				Type:        "farm",
				Target:      3,
				MinDistance: 3,
				Allowed:     []world.TerrainTag{world.TerrainGrass},
			}},
		},
	}

	first := &app.RequestContext{}
	h.generate(context.Background(), first)
	if got := first.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("first generate: expected 200, got %d", got)
	}
	var firstResp generateResponse
	if err := json.Unmarshal(first.Response.Body(), &firstResp); err != nil {
		t.Fatalf("decode first response: %v", err)
	}
	if firstResp.Adopted == 0 || firstResp.Adopted != firstResp.PlacedByType["farm"] {
		t.Fatalf("expected every placed farm adopted, got %+v", firstResp)
	}

	// A fixed seed regenerates the same layout; nothing new to adopt.
	second := &app.RequestContext{}
	h.generate(context.Background(), second)
	if got := second.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("second generate: expected 200, got %d", got)
	}
	var secondResp generateResponse
	if err := json.Unmarshal(second.Response.Body(), &secondResp); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	if secondResp.Adopted != 0 {
		t.Fatalf("regeneration must adopt nothing, got %d", secondResp.Adopted)
	}

	views, err := simUC.BuildingRepo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != firstResp.Adopted {
		t.Fatalf("registry changed size across regeneration: %d != %d", len(views), firstResp.Adopted)
	}
}
