// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/config"
	"github.com/festy23/teamup/internal/database"
	dbconfig "github.com/festy23/teamup/internal/database/config"
	"github.com/festy23/teamup/internal/database/pool"
	"github.com/festy23/teamup/internal/server"
	"github.com/festy23/teamup/pkg/logger"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger, "service", "teamup", "version", cfg.App.Version)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatalw("server exited with error", "error", err)
	}
}

func run(cfg config.Config, appLogger *zap.SugaredLogger) error {
	dbCfg := dbconfig.LoadConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		return err
	}
	poolCfg := pool.LoadPoolConfigFromEnv()
	if err := poolCfg.Validate(); err != nil {
		return err
	}

	connector := database.NewConnector(dbCfg, poolCfg, appLogger)
	defer func() {
		if err := connector.Close(context.Background()); err != nil {
			appLogger.Warnw("failed to close store", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.IsProduction() {
		appLogger.Infow("store connection deferred to first request", "environment", cfg.App.Environment)
	} else {
		if _, err := connector.Get(ctx); err != nil {
			return fmt.Errorf("eager store connection: %w", err)
		}
	}

	engine := server.NewEngine(cfg, connector, appLogger)
	return server.New(cfg.Server, engine, appLogger).Run(ctx)
}
