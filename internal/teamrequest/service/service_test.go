package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/teamrequest/model"
	"github.com/festy23/teamup/internal/teamrequest/repository"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]model.TeamRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamRequest), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*model.TeamRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamRequest), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, req *model.TeamRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, req *model.TeamRequest) (*model.TeamRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamRequest), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepository) InsertMany(ctx context.Context, reqs []model.TeamRequest) error {
	args := m.Called(ctx, reqs)
	return args.Error(0)
}

var _ repository.Repository = (*mockRepository)(nil)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 987654321, time.UTC)

func newTestService(repo repository.Repository) Service {
	return New(repo, zap.NewNop().Sugar(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "generated-id" }),
	)
}

func storedRequest() *model.TeamRequest {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &model.TeamRequest{
		ID:               "r1",
		Title:            "Build a game",
		Description:      "2D platformer",
		Skills:           []string{"go", "design"},
		ContactInfo:      "a@b.com",
		OwnerFingerprint: "fp1",
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("List", ctx).Return([]model.TeamRequest{*storedRequest()}, nil)

		got, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		storeErr := errors.New("connection reset")
		repo.On("List", ctx).Return(nil, storeErr)

		got, err := svc.List(ctx)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and equal timestamps", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("Create", ctx, mock.AnythingOfType("*model.TeamRequest")).Return(nil)

		got, err := svc.Create(ctx, &model.WriteRequest{
			Title:            "  Build a game ",
			Skills:           []string{"go", " "},
			ContactInfo:      "a@b.com",
			OwnerFingerprint: "fp1",
		})

		require.NoError(t, err)
		assert.Equal(t, "generated-id", got.ID)
		assert.Equal(t, "Build a game", got.Title)
		assert.Equal(t, []string{"go"}, got.Skills)
		assert.Equal(t, "fp1", got.OwnerFingerprint)
		assert.Equal(t, model.Timestamp(fixedNow), got.CreatedAt)
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("missing title never reaches the store", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		got, err := svc.Create(ctx, &model.WriteRequest{OwnerFingerprint: "fp1"})

		assert.Nil(t, got)
		assert.ErrorIs(t, err, model.ErrInvalidRequest)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing fingerprint", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		_, err := svc.Create(ctx, &model.WriteRequest{Title: "t"})
		assert.ErrorIs(t, err, model.ErrInvalidRequest)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("Create", ctx, mock.Anything).Return(model.ErrStoreUnavailable)

		_, err := svc.Create(ctx, &model.WriteRequest{Title: "t", OwnerFingerprint: "fp"})
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner replaces fields and refreshes updatedAt", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		existing := storedRequest()
		repo.On("GetByID", ctx, "r1").Return(existing, nil)
		// Update receives the same pointer GetByID returned, mutated in place.
		repo.On("Update", ctx, existing).Return(existing, nil)

		got, err := svc.Update(ctx, "r1", &model.WriteRequest{
			Title:            "Build a better game",
			OwnerFingerprint: "fp1",
		})

		require.NoError(t, err)
		assert.Equal(t, "Build a better game", got.Title)
		assert.Empty(t, got.Description)
		assert.Equal(t, []string{}, got.Skills)
		assert.Equal(t, "fp1", got.OwnerFingerprint)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got.CreatedAt)
		assert.Equal(t, model.Timestamp(fixedNow), got.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("fingerprint mismatch leaves the store untouched", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)

		got, err := svc.Update(ctx, "r1", &model.WriteRequest{Title: "x", OwnerFingerprint: "fp2"})

		assert.Nil(t, got)
		assert.ErrorIs(t, err, model.ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "missing").Return(nil, model.ErrRequestNotFound)

		_, err := svc.Update(ctx, "missing", &model.WriteRequest{Title: "x", OwnerFingerprint: "fp1"})
		assert.ErrorIs(t, err, model.ErrRequestNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("forbidden is reported before validation", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)

		_, err := svc.Update(ctx, "r1", &model.WriteRequest{OwnerFingerprint: "fp2"})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("owner with missing title", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)

		_, err := svc.Update(ctx, "r1", &model.WriteRequest{OwnerFingerprint: "fp1"})
		assert.ErrorIs(t, err, model.ErrInvalidRequest)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("row deleted between read and write", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)
		repo.On("Update", ctx, mock.Anything).Return(nil, model.ErrRequestNotFound)

		_, err := svc.Update(ctx, "r1", &model.WriteRequest{Title: "x", OwnerFingerprint: "fp1"})
		assert.ErrorIs(t, err, model.ErrRequestNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)
		repo.On("Delete", ctx, "r1").Return(nil)

		require.NoError(t, svc.Delete(ctx, "r1", "fp1"))
		repo.AssertExpectations(t)
	})

	t.Run("fingerprint mismatch", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)

		err := svc.Delete(ctx, "r1", "fp2")
		assert.ErrorIs(t, err, model.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty fingerprint is a mismatch", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)

		assert.ErrorIs(t, svc.Delete(ctx, "r1", ""), model.ErrForbidden)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "missing").Return(nil, model.ErrRequestNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, "missing", "fp1"), model.ErrRequestNotFound)
	})
}

func TestNextUpdatedAt(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &model.TeamRequest{CreatedAt: base, UpdatedAt: base}

	t.Run("clock moved forward", func(t *testing.T) {
		now := base.Add(time.Second)
		assert.Equal(t, now, nextUpdatedAt(existing, now))
	})

	t.Run("same millisecond", func(t *testing.T) {
		assert.Equal(t, base.Add(time.Millisecond), nextUpdatedAt(existing, base))
	})

	t.Run("clock went backwards", func(t *testing.T) {
		assert.Equal(t, base.Add(time.Millisecond), nextUpdatedAt(existing, base.Add(-time.Hour)))
	})

	t.Run("updatedAt never precedes createdAt", func(t *testing.T) {
		skewed := &model.TeamRequest{CreatedAt: base, UpdatedAt: base.Add(-time.Minute)}
		assert.Equal(t, base.Add(time.Millisecond), nextUpdatedAt(skewed, base.Add(-time.Second)))
	})
}
