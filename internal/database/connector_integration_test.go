//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/database/config"
	"github.com/festy23/teamup/internal/database/pool"
)

func TestIntegration_PostgresConnector(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("teamup"),
		postgres.WithUsername("teamup"),
		postgres.WithPassword("teamup"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	uri, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	c := NewConnector(config.Config{URI: uri, ConnectTimeout: 5 * time.Second, SocketTimeout: 5 * time.Second},
		pool.DefaultPoolConfig(), zap.NewNop().Sugar())
	t.Cleanup(func() { _ = c.Close(ctx) })

	store, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.DialectPostgres, store.Dialect())

	repo := c.Requests()
	require.NoError(t, repo.Create(ctx, newRequest("r1")))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Skills)

	existing, err := repo.ExistingIDs(ctx, []string{"r1", "r2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, existing)
}

func TestIntegration_MongoConnector(t *testing.T) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	c := NewConnector(config.Config{URI: uri, ConnectTimeout: 5 * time.Second, SocketTimeout: 5 * time.Second},
		pool.DefaultPoolConfig(), zap.NewNop().Sugar())
	t.Cleanup(func() { _ = c.Close(ctx) })

	store, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.DialectMongo, store.Dialect())
	require.NoError(t, store.Ping(ctx))

	require.NoError(t, c.Requests().Create(ctx, newRequest("r1")))
	list, err := c.Requests().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
