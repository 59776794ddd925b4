package main

import (
	"context"
	"log"
	"net/http"
	"time"

	authApp "alfozan-insights/internal/application/auth"
	"alfozan-insights/internal/application/competitors"
	"alfozan-insights/internal/application/pipeline"
	"alfozan-insights/internal/application/projects"
	reportsApp "alfozan-insights/internal/application/reports"
	"alfozan-insights/internal/application/simulation"
	"alfozan-insights/internal/infra/memory"
	authinfra "alfozan-insights/internal/infrastructure/auth"
	"alfozan-insights/internal/infrastructure/config"
	"alfozan-insights/internal/infrastructure/db"
	"alfozan-insights/internal/infrastructure/persistence/postgres"
	httpapi "alfozan-insights/internal/interface/http"
)

// store 彙整 API 需要的全部資料存取介面；記憶體與 Postgres 實作皆滿足。
type store interface {
	projects.Repository
	competitors.Repository
	pipeline.Store
	reportsApp.SnapshotReader
	authApp.UserRepository
}

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		log.Fatalf("CRITICAL: load config failed: %v", err)
	}
	log.Printf("configuration loaded (HTTP_ADDR=%s)", cfg.HTTP.Addr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("testing database connection...")
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.Printf("warning: database connection failed, falling back to in-memory store: %v", err)
		pool = nil
	}

	var st store
	if pool != nil {
		defer pool.Close()
		log.Printf("database connected successfully")
		st = postgres.NewRepo(pool)
	} else {
		log.Printf("no usable database; running with in-memory store")
		mem := memory.NewStore()
		mem.SeedUsers()
		if cfg.Seed.Demo {
			mem.SeedDemo(time.Now())
			log.Printf("demo dataset seeded")
		}
		st = mem
	}

	issuer := authinfra.NewJWTIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	pipelineUC := pipeline.NewUseCase(st, simulation.NewSource(cfg.Scheduler.Seed))
	reportsUC := reportsApp.NewUseCase(st, cfg.Reports.Dir)

	apiServer := httpapi.NewServer(httpapi.Deps{
		Projects:    projects.NewService(st),
		Competitors: competitors.NewService(st),
		Pipeline:    pipelineUC,
		Reports:     reportsUC,
		Snapshot:    st,
		Login:       authApp.NewLoginUseCase(st, authinfra.BcryptHasher{}, issuer),
		Logout:      authApp.NewLogoutUseCase(issuer),
		Tokens:      issuer,
	})

	if cfg.Scheduler.Enabled {
		worker := pipeline.NewWorker(pipelineUC, reportsUC)
		if err := worker.Register(pipeline.Schedule{
			Progress:    cfg.Scheduler.Progress,
			Sales:       cfg.Scheduler.Sales,
			Metrics:     cfg.Scheduler.Metrics,
			Competitors: cfg.Scheduler.Competitors,
			DailyReport: cfg.Scheduler.DailyReport,
			FullCycle:   cfg.Scheduler.FullCycle,
		}); err != nil {
			log.Fatalf("CRITICAL: register scheduler failed: %v", err)
		}
		worker.Start()
		defer worker.Stop()
	}

	addr := cfg.HTTP.Addr
	log.Printf("starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, apiServer.Router()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
