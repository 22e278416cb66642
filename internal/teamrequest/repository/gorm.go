package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/festy23/teamup/internal/teamrequest/model"
)

type repository struct {
	db *gorm.DB
}

// New creates a team request repository backed by a SQL database through gorm.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// List returns all team requests, newest created first.
func (r *repository) List(ctx context.Context) ([]model.TeamRequest, error) {
	var requests []model.TeamRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	if requests == nil {
		return []model.TeamRequest{}, nil
	}
	for i := range requests {
		canonicalize(&requests[i])
	}

	return requests, nil
}

// GetByID finds a team request by id.
func (r *repository) GetByID(ctx context.Context, id string) (*model.TeamRequest, error) {
	var req model.TeamRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRequestNotFound
		}
		return nil, err
	}

	canonicalize(&req)
	return &req, nil
}

// Create inserts a new team request.
func (r *repository) Create(ctx context.Context, req *model.TeamRequest) error {
	canonicalize(req)
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if isDuplicateError(err) {
			return model.ErrRequestExists
		}
		return err
	}
	return nil
}

// Update replaces the mutable fields of an existing team request.
func (r *repository) Update(ctx context.Context, req *model.TeamRequest) (*model.TeamRequest, error) {
	canonicalize(req)
	result := r.db.WithContext(ctx).
		Model(&model.TeamRequest{ID: req.ID}).
		Select(updatableColumns).
		Updates(req)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrRequestNotFound
	}
	return req, nil
}

// Delete removes a team request by id.
func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TeamRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrRequestNotFound
	}
	return nil
}

// ExistingIDs returns the subset of ids already present in the table.
func (r *repository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	found := []string{}
	if len(ids) == 0 {
		return found, nil
	}

	err := r.db.WithContext(ctx).
		Model(&model.TeamRequest{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// InsertMany inserts all requests with a single INSERT statement.
func (r *repository) InsertMany(ctx context.Context, reqs []model.TeamRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	for i := range reqs {
		canonicalize(&reqs[i])
	}

	if err := r.db.WithContext(ctx).Create(&reqs).Error; err != nil {
		if isDuplicateError(err) {
			return fmt.Errorf("bulk insert: %w", model.ErrRequestExists)
		}
		return err
	}
	return nil
}

// isDuplicateError checks if error is a duplicate key error.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// PostgreSQL and SQLite report unique violations differently.
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
