// Package service provides business logic layer for the team request module.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/teamrequest/model"
	"github.com/festy23/teamup/internal/teamrequest/repository"
)

// Service defines the interface for team request business logic operations.
type Service interface {
	// List returns all team requests, newest created first.
	List(ctx context.Context) ([]model.TeamRequest, error)

	// Create validates and stores a new team request.
	Create(ctx context.Context, req *model.WriteRequest) (*model.TeamRequest, error)

	// Update replaces a team request owned by req.OwnerFingerprint.
	Update(ctx context.Context, id string, req *model.WriteRequest) (*model.TeamRequest, error)

	// Delete removes a team request owned by fingerprint.
	Delete(ctx context.Context, id, fingerprint string) error
}

// Option customizes a service.
type Option func(*service)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithIDGenerator overrides how identifiers are assigned on create.
func WithIDGenerator(newID func() string) Option {
	return func(s *service) {
		s.newID = newID
	}
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
	now    func() time.Time
	newID  func() string
}

// New creates a new team request service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger, opts ...Option) Service {
	s := &service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all team requests, newest created first.
func (s *service) List(ctx context.Context) ([]model.TeamRequest, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team requests: %w", err)
	}
	return requests, nil
}

// Create validates and stores a new team request with server-assigned id and timestamps.
func (s *service) Create(ctx context.Context, req *model.WriteRequest) (*model.TeamRequest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := model.Timestamp(s.now())
	created := &model.TeamRequest{
		ID:               s.newID(),
		OwnerFingerprint: req.OwnerFingerprint,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created.Apply(req)

	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create team request: %w", err)
	}

	s.logger.Infow("team request created", "id", created.ID)
	return created, nil
}

// Update replaces the mutable fields of a team request.
// Not found is reported before ownership, and ownership before validation.
func (s *service) Update(ctx context.Context, id string, req *model.WriteRequest) (*model.TeamRequest, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get team request %s: %w", id, err)
	}

	if !existing.IsOwnedBy(req.OwnerFingerprint) {
		return nil, model.ErrForbidden
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing.Apply(req)
	existing.UpdatedAt = nextUpdatedAt(existing, model.Timestamp(s.now()))

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update team request %s: %w", id, err)
	}

	s.logger.Infow("team request updated", "id", id)
	return updated, nil
}

// Delete removes a team request after checking ownership.
func (s *service) Delete(ctx context.Context, id, fingerprint string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get team request %s: %w", id, err)
	}

	if !existing.IsOwnedBy(fingerprint) {
		return model.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team request %s: %w", id, err)
	}

	s.logger.Infow("team request deleted", "id", id)
	return nil
}

// nextUpdatedAt returns now, bumped so that updatedAt strictly increases and
// never precedes createdAt even when the clock is coarse or skewed.
func nextUpdatedAt(existing *model.TeamRequest, now time.Time) time.Time {
	floor := existing.UpdatedAt
	if existing.CreatedAt.After(floor) {
		floor = existing.CreatedAt
	}
	if now.After(floor) {
		return now
	}
	return floor.Add(time.Millisecond)
}
