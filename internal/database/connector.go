// Package database manages the single shared connection to the team request store.
package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/database/config"
	"github.com/festy23/teamup/internal/database/pool"
	"github.com/festy23/teamup/internal/teamrequest/model"
	"github.com/festy23/teamup/internal/teamrequest/repository"
)

// Connector connects to the store at most once and hands out the cached handle.
type Connector struct {
	cfg     config.Config
	poolCfg pool.Config
	logger  *zap.SugaredLogger
	open    Opener

	// mu serializes connection attempts; store is read without it.
	mu    sync.Mutex
	store atomic.Pointer[Store]
}

// Option customizes a Connector.
type Option func(*Connector)

// WithOpener replaces the function used to establish the connection.
func WithOpener(open Opener) Option {
	return func(c *Connector) {
		c.open = open
	}
}

// NewConnector creates a connector. No connection is made until Get is called.
func NewConnector(cfg config.Config, poolCfg pool.Config, logger *zap.SugaredLogger, opts ...Option) *Connector {
	c := &Connector{
		cfg:     cfg,
		poolCfg: poolCfg,
		logger:  logger,
		open:    Open,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached store, connecting first if needed. Concurrent callers
// wait for a single attempt. A failed attempt is not cached.
func (c *Connector) Get(ctx context.Context) (*Store, error) {
	if store := c.store.Load(); store != nil {
		return store, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if store := c.store.Load(); store != nil {
		return store, nil
	}

	start := time.Now()
	store, err := c.open(ctx, c.cfg, c.poolCfg)
	if err != nil {
		sanitized := config.SanitizeError(err, c.cfg)
		c.logger.Errorw("store connection failed",
			"uri", c.cfg.Redacted(),
			"duration", time.Since(start),
			"error", sanitized,
		)
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, sanitized)
	}

	c.store.Store(store)
	c.logger.Infow("connected to store",
		"dialect", store.Dialect(),
		"uri", c.cfg.Redacted(),
		"duration", time.Since(start),
	)
	return store, nil
}

// Connected reports whether a store handle is cached. It does not wait for
// a connection attempt in progress.
func (c *Connector) Connected() bool {
	return c.store.Load() != nil
}

// Close releases the cached store, if any.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	store := c.store.Swap(nil)
	if store == nil {
		return nil
	}
	if err := store.Close(ctx); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	c.logger.Infow("store connection closed")
	return nil
}

// Requests returns a repository that resolves the store on every call, so it
// can be wired before the first connection exists.
func (c *Connector) Requests() repository.Repository {
	return lazyRepository{connector: c}
}

type lazyRepository struct {
	connector *Connector
}

func (r lazyRepository) repo(ctx context.Context) (repository.Repository, error) {
	store, err := r.connector.Get(ctx)
	if err != nil {
		return nil, err
	}
	return store.Requests(), nil
}

func (r lazyRepository) List(ctx context.Context) ([]model.TeamRequest, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (r lazyRepository) GetByID(ctx context.Context, id string) (*model.TeamRequest, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (r lazyRepository) Create(ctx context.Context, req *model.TeamRequest) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Create(ctx, req)
}

func (r lazyRepository) Update(ctx context.Context, req *model.TeamRequest) (*model.TeamRequest, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Update(ctx, req)
}

func (r lazyRepository) Delete(ctx context.Context, id string) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

func (r lazyRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.ExistingIDs(ctx, ids)
}

func (r lazyRepository) InsertMany(ctx context.Context, reqs []model.TeamRequest) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.InsertMany(ctx, reqs)
}
