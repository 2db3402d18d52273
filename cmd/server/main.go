package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	staticcatalog "transportgame/internal/adapter/catalog/static"
	httpadapter "transportgame/internal/adapter/http"
	metricsinmem "transportgame/internal/adapter/metrics/inmemory"
	gormrepo "transportgame/internal/adapter/repo/gorm"
	"transportgame/internal/adapter/repo/memory"
	worldruntime "transportgame/internal/adapter/world/runtime"
	"transportgame/internal/app/ports"
	"transportgame/internal/app/replay"
	"transportgame/internal/app/simulate"
	"transportgame/internal/app/status"
	"transportgame/internal/app/worldgen"
	"transportgame/internal/domain/sim"
	"transportgame/internal/domain/world"
	feedws "transportgame/internal/transport/websocket"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	buildingRepo, trainRepo, eventRepo, txManager := mustBuildRepos()
	terrain := buildTerrainFromEnv()
	catalog := mustBuildCatalog()
	kpiRecorder := metricsinmem.NewRecorder()

	hub := feedws.NewHub()
	go hub.Run()

	simUC := &simulate.UseCase{
		TxManager:    txManager,
		BuildingRepo: buildingRepo,
		TrainRepo:    trainRepo,
		EventRepo:    eventRepo,
		Metrics:      kpiRecorder,
		Feed:         hub,
		Now:          time.Now,
	}
	worldgenUC := &worldgen.UseCase{
		Terrain: terrain,
		Catalog: catalog,
		Metrics: kpiRecorder,
		Seed:    int64(intEnv("WORLD_SEED", 1)),
	}

	ctx := context.Background()
	restored, err := simUC.LoadPersisted(ctx)
	if err != nil {
		log.Fatalf("load persisted entities: %v", err)
	}
	if restored > 0 {
		log.Printf("restored %d persisted entities", restored)
	}
	if _, err := worldgenUC.Generate(ctx); err != nil {
		log.Fatalf("generate industries: %v", err)
	}
	adopted, err := simUC.AdoptIndustries(ctx, worldgenUC.Industries())
	if err != nil {
		log.Fatalf("adopt industries: %v", err)
	}
	if adopted > 0 {
		log.Printf("adopted %d generated industries", adopted)
	}
	seedDemoEntities(ctx, simUC, terrain)

	h := httpadapter.Handler{
		StatusUC: status.UseCase{
			BuildingRepo: buildingRepo,
			TrainRepo:    trainRepo,
			Terrain:      terrain,
			Industries:   worldgenUC,
		},
		SimUC:      simUC,
		WorldgenUC: worldgenUC,
		ReplayUC:   replay.UseCase{Events: eventRepo},
		KPI:        kpiRecorder,
	}

	tickInterval := time.Duration(intEnv("SIM_TICK_MS", 1000)) * time.Millisecond
	go runTickLoop(ctx, simUC, tickInterval)

	feedAddr := envOr("FEED_ADDR", ":8081")
	go serveFeed(hub, feedAddr)

	addr := envOr("HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("transportgame server listening on %s (feed on %s)", addr, feedAddr)
	s.Spin()
}

func mustBuildRepos() (ports.BuildingStateRepository, ports.TrainStateRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("TRANSPORT_DB_DSN"))
	if dsn == "" {
		log.Println("TRANSPORT_DB_DSN not set, using in-memory repositories")
		store := memory.NewStore()
		return memory.NewBuildingRepo(store), memory.NewTrainRepo(store), memory.NewEventRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewBuildingRepo(db), gormrepo.NewTrainRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

func buildTerrainFromEnv() worldruntime.Provider {
	cfg := worldruntime.DefaultConfig()
	cfg.Width = intEnv("WORLD_WIDTH", cfg.Width)
	cfg.Height = intEnv("WORLD_HEIGHT", cfg.Height)
	cfg.Seed = int64(intEnv("WORLD_SEED", int(cfg.Seed)))
	return worldruntime.NewProvider(cfg)
}

func mustBuildCatalog() staticcatalog.Provider {
	catalog, err := staticcatalog.NewProvider(strings.TrimSpace(os.Getenv("CATALOG_ROOT")))
	if err != nil {
		log.Fatalf("load building catalog: %v", err)
	}
	return catalog
}

// seedDemoEntities gives a fresh world something to watch: one depot under
// construction near the map center and one train circling it. Entities that
// survived a restart are already registered and are left as they are.
func seedDemoEntities(ctx context.Context, simUC *simulate.UseCase, terrain worldruntime.Provider) {
	size := terrain.Size()
	cx := size.Width / 2
	cy := size.Height / 2

	depot := sim.NewBuilding("demo-depot", "depot", world.Point{X: cx, Y: cy}, 60, 200)
	if err := simUC.AddBuilding(ctx, depot); err != nil && !errors.Is(err, ports.ErrConflict) {
		log.Fatalf("seed demo depot: %v", err)
	}

	train := sim.NewTrain("demo-train", sim.Vec2{X: float64(cx), Y: float64(cy)}, 2, 100, 5, 100)
	train.SetRoute([]sim.Vec2{
		{X: float64(cx + 5), Y: float64(cy)},
		{X: float64(cx + 5), Y: float64(cy + 5)},
		{X: float64(cx), Y: float64(cy)},
	})
	if err := simUC.AddTrain(ctx, train); err != nil && !errors.Is(err, ports.ErrConflict) {
		log.Fatalf("seed demo train: %v", err)
	}
}

func runTickLoop(ctx context.Context, simUC *simulate.UseCase, interval time.Duration) {
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if _, err := simUC.Tick(ctx, dt); err != nil {
			log.Printf("tick failed: %v", err)
		}
	}
}

func serveFeed(hub *feedws.Hub, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r)
	})
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("feed listener: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
