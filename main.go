package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"warehouse-print-agent/internal/api"
	"warehouse-print-agent/internal/config"
	"warehouse-print-agent/internal/logger"
	"warehouse-print-agent/internal/models"
	"warehouse-print-agent/internal/printing"
	"warehouse-print-agent/internal/service"
	"warehouse-print-agent/internal/telemetry"
	"warehouse-print-agent/internal/update"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	log.Info("warehouse print agent starting",
		zap.String("version", models.AgentVersion),
		zap.String("port", cfg.Port),
		zap.String("dataDir", cfg.DataDir))

	store, err := config.OpenStore(cfg.DataDir, log)
	if err != nil {
		log.Fatal("failed to open station profile", zap.Error(err))
	}

	history := printing.NewHistory(cfg.HistorySize)
	hub := api.NewHub(history, log)
	history.SetOnUpdate(hub.Broadcast)

	converter := printing.NewConverter(cfg.RenderEndpoint, cfg.RenderTimeout, log)
	executor := printing.NewExecutor(log)
	reporter := telemetry.NewReporter(log)
	engine := printing.NewEngine(converter, executor, store, reporter, history, log)

	handler := api.NewHandler(engine, store, history, hub, update.NewUpdater(log), log)
	router := api.NewRouter(handler)

	addr := "127.0.0.1:" + cfg.Port
	if err := service.Run(addr, router, log); err != nil {
		log.Fatal("service run failed", zap.Error(err))
	}
}
