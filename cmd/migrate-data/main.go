// Package main imports the legacy data/requests.json export into the store.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/database"
	dbconfig "github.com/festy23/teamup/internal/database/config"
	"github.com/festy23/teamup/internal/database/pool"
	"github.com/festy23/teamup/internal/legacy"
	"github.com/festy23/teamup/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	appLogger, err := logger.New("service", "teamup-migrate-data")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	code := 0
	if err := run(context.Background(), appLogger); err != nil {
		appLogger.Errorw("migration failed", "error", err)
		code = 1
	}
	_ = appLogger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, appLogger *zap.SugaredLogger) error {
	dbCfg := dbconfig.LoadConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	connector := database.NewConnector(dbCfg, pool.LoadPoolConfigFromEnv(), appLogger)
	defer func() {
		if err := connector.Close(ctx); err != nil {
			appLogger.Warnw("failed to close store", "error", err)
		}
	}()

	// The store is dialed on first use, after the export has been read.
	result, err := legacy.New(connector.Requests(), appLogger).Run(ctx)
	if err != nil {
		return fmt.Errorf("after %d inserts: %w", result.Inserted, err)
	}

	appLogger.Infow("migration completed",
		"read", result.Read,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"backup", result.BackupPath,
	)
	return nil
}
