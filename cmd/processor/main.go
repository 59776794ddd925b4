package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"alfozan-insights/internal/application/alert"
	"alfozan-insights/internal/application/pipeline"
	reportsApp "alfozan-insights/internal/application/reports"
	"alfozan-insights/internal/application/simulation"
	"alfozan-insights/internal/infra/memory"
	"alfozan-insights/internal/infrastructure/config"
	"alfozan-insights/internal/infrastructure/db"
	"alfozan-insights/internal/infrastructure/notify"
	"alfozan-insights/internal/infrastructure/persistence/postgres"
)

// processorStore 是排程器需要的資料存取介面。
type processorStore interface {
	pipeline.Store
	reportsApp.SnapshotReader
}

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		log.Fatalf("CRITICAL: load config failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.Connect(ctx, cfg.DB)
	cancel()
	if err != nil {
		log.Printf("warning: database connection failed, falling back to in-memory store: %v", err)
		pool = nil
	}

	var st processorStore
	if pool != nil {
		defer pool.Close()
		log.Printf("database connected successfully")
		st = postgres.NewRepo(pool)
	} else {
		log.Printf("no usable database; running with in-memory store")
		mem := memory.NewStore()
		mem.SeedDemo(time.Now())
		st = mem
	}

	uc := pipeline.NewUseCase(st, simulation.NewSource(cfg.Scheduler.Seed))
	reporter := reportsApp.NewUseCase(st, cfg.Reports.Dir)

	worker := pipeline.NewWorker(uc, reporter)
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("CRITICAL: invalid TELEGRAM_CHAT_ID: %v", err)
		}
		notifier := notify.NewTelegramClient(token, chatID, "AlFozan")
		subs := alert.NewStaticRepository(alert.DefaultSubscriptions(time.Now()))
		worker.WithAlerter(alert.NewEngine(subs, st, st, notifier))
		log.Printf("telegram alerts enabled")
	}
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

	// 啟動後先跑完整一輪，讓指標立即可用。
	worker.RunFullCycleNow()
	worker.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	worker.Stop()
}
