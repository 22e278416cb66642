package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/teamup/internal/database/config"
	"github.com/festy23/teamup/internal/database/migrate"
	"github.com/festy23/teamup/internal/database/pool"
	"github.com/festy23/teamup/internal/teamrequest/model"
	"github.com/festy23/teamup/internal/teamrequest/repository"
)

// Opener establishes a connection described by cfg.
type Opener func(ctx context.Context, cfg config.Config, poolCfg pool.Config) (*Store, error)

// Open dispatches on the URI scheme.
func Open(ctx context.Context, cfg config.Config, poolCfg pool.Config) (*Store, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}

	switch dialect {
	case config.DialectMongo:
		return openMongo(ctx, cfg, poolCfg)
	case config.DialectPostgres:
		return openPostgres(ctx, cfg, poolCfg)
	case config.DialectSQLite:
		return openSQLite(ctx, cfg, poolCfg)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

func openMongo(ctx context.Context, cfg config.Config, poolCfg pool.Config) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetMaxPoolSize(poolCfg.MongoMaxPoolSize()).
		SetMinPoolSize(poolCfg.MongoMinPoolSize()).
		SetMaxConnIdleTime(poolCfg.ConnMaxIdleTime)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.MongoDatabase())
	if err := repository.EnsureMongoIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	return NewStore(
		config.DialectMongo,
		repository.NewMongo(db),
		func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		client.Disconnect,
	), nil
}

func openPostgres(_ context.Context, cfg config.Config, poolCfg pool.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.URI), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}
	if err := migrate.Migrate(db); err != nil {
		closeGorm(db)
		return nil, err
	}
	return gormStore(config.DialectPostgres, db), nil
}

func openSQLite(_ context.Context, cfg config.Config, poolCfg pool.Config) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if cfg.IsInMemory() {
		poolCfg = pool.SingleConnConfig()
	}
	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}
	if err := db.AutoMigrate(&model.TeamRequest{}); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return gormStore(config.DialectSQLite, db), nil
}

// Repository errors are logged by the handlers, so gorm stays quiet.
func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
}

func gormStore(dialect config.Dialect, db *gorm.DB) *Store {
	return NewStore(
		dialect,
		repository.New(db),
		func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get underlying sql.DB: %w", err)
			}
			return sqlDB.PingContext(ctx)
		},
		func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get underlying sql.DB: %w", err)
			}
			if err := sqlDB.Close(); err != nil {
				return fmt.Errorf("failed to close database connection: %w", err)
			}
			return nil
		},
	)
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
