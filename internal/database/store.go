package database

import (
	"context"

	"github.com/festy23/teamup/internal/database/config"
	"github.com/festy23/teamup/internal/teamrequest/repository"
)

// Store is an established connection to one backend.
type Store struct {
	dialect config.Dialect
	repo    repository.Repository
	ping    func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// NewStore wraps an open backend. ping and closeFn may be nil.
func NewStore(dialect config.Dialect, repo repository.Repository, ping, closeFn func(ctx context.Context) error) *Store {
	return &Store{dialect: dialect, repo: repo, ping: ping, close: closeFn}
}

// Dialect returns the backend kind.
func (s *Store) Dialect() config.Dialect {
	return s.dialect
}

// Requests returns the team request repository bound to this connection.
func (s *Store) Requests() repository.Repository {
	return s.repo
}

// Ping verifies the connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
