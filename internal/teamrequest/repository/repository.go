// Package repository provides data access layer for the team request module.
package repository

import (
	"context"

	"github.com/festy23/teamup/internal/teamrequest/model"
)

// Repository defines the interface for team request data access operations.
// Every mutating method maps onto exactly one single-document store operation.
type Repository interface {
	// List returns all team requests, newest created first.
	List(ctx context.Context) ([]model.TeamRequest, error)

	// GetByID finds a team request by id.
	GetByID(ctx context.Context, id string) (*model.TeamRequest, error)

	// Create inserts a new team request.
	Create(ctx context.Context, req *model.TeamRequest) error

	// Update replaces the mutable fields and updatedAt of an existing request
	// and returns the stored version.
	Update(ctx context.Context, req *model.TeamRequest) (*model.TeamRequest, error)

	// Delete removes a team request by id.
	Delete(ctx context.Context, id string) error

	// ExistingIDs returns the subset of ids already present in the store.
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)

	// InsertMany bulk-inserts requests in a single operation.
	InsertMany(ctx context.Context, reqs []model.TeamRequest) error
}

// updatableColumns are the columns Update writes. created_at, id and
// owner_fingerprint are never rewritten.
var updatableColumns = []string{
	"title",
	"description",
	"skills",
	"project_type",
	"contact_info",
	"updated_at",
}

// canonicalize keeps skills a non-nil list and timestamps in UTC; drivers hand
// back times in the session or local zone.
func canonicalize(req *model.TeamRequest) {
	if req.Skills == nil {
		req.Skills = []string{}
	}
	req.CreatedAt = req.CreatedAt.UTC()
	req.UpdatedAt = req.UpdatedAt.UTC()
}
