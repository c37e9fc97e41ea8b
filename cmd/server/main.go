package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChrisWaycott/mini-chalice/internal/engine"
	"github.com/ChrisWaycott/mini-chalice/internal/network"
	"github.com/ChrisWaycott/mini-chalice/internal/server"
	"github.com/ChrisWaycott/mini-chalice/internal/version"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/ChrisWaycott/mini-chalice/pkg/scenario"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var scenarioPath string
	var tick time.Duration
	flag.StringVar(&scenarioPath, "scenario", "", "Path to scenario YAML (empty for the built-in one)")
	flag.DurationVar(&tick, "tick", 16*time.Millisecond, "Host frame interval driving animations")
	flag.Parse()

	logger.Log.Info("Starting Mini Chalice...")
	logger.Log.Info(version.Label())

	sc := scenario.Default()
	if scenarioPath != "" {
		loaded, err := scenario.Load(scenarioPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load scenario")
		}
		sc = loaded
	}

	// Формируем конфиг
	cfg := engine.NewConfig()
	if err := sc.ApplyRules(&cfg); err != nil {
		logger.Log.WithError(err).Fatal("Invalid scenario rules")
	}

	world, err := sc.Build(cfg.APPerTurn)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build scenario")
	}

	port := os.Getenv("CHALICE_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := engine.NewSession(engine.NewController(cfg, world), network.NewBroadcaster(), tick)
	go session.Run(ctx)

	// 3. Запуск сервера
	srv := server.New(session, port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("Server start error")
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("Server shutdown failed")
	}

	logger.Log.Info("Done.")
}
