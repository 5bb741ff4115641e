package service_test

import (
	"context"
	"errors"
	"testing"

	"creature-server/internal/models"
	"creature-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeleteCreature(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the row and its images", func(t *testing.T) {
		repo := new(mockCreatureRepo)
		images := new(mockImageStore)
		svc := service.NewCleanupService(repo, images, zap.NewNop())

		images.On("DeleteByPrefix", ctx, "abcd2345/").Return(2, nil).Once()
		repo.On("Delete", ctx, "abcd2345").Return(nil).Once()

		require.NoError(t, svc.DeleteCreature(ctx, "abcd2345"))
		repo.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("Object storage failure does not block the delete", func(t *testing.T) {
		repo := new(mockCreatureRepo)
		images := new(mockImageStore)
		svc := service.NewCleanupService(repo, images, zap.NewNop())

		images.On("DeleteByPrefix", ctx, "abcd2345/").Return(0, errors.New("bucket gone")).Once()
		repo.On("Delete", ctx, "abcd2345").Return(nil).Once()

		assert.NoError(t, svc.DeleteCreature(ctx, "abcd2345"))
	})

	t.Run("Unknown creature is not found", func(t *testing.T) {
		repo := new(mockCreatureRepo)
		images := new(mockImageStore)
		svc := service.NewCleanupService(repo, images, zap.NewNop())

		images.On("DeleteByPrefix", ctx, mock.Anything).Return(0, nil).Once()
		repo.On("Delete", ctx, "missing1").Return(models.ErrNotFound).Once()

		assert.ErrorIs(t, svc.DeleteCreature(ctx, "missing1"), models.ErrNotFound)
	})
}

func TestCleanupExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes expired rows with their images", func(t *testing.T) {
		repo := new(mockCreatureRepo)
		images := new(mockImageStore)
		svc := service.NewCleanupService(repo, images, zap.NewNop())

		repo.On("ListExpiredIDs", ctx, mock.Anything).Return([]string{"aaaa2345", "bbbb2345"}, nil).Once()
		images.On("DeleteByPrefix", ctx, "aaaa2345/").Return(2, nil).Once()
		images.On("DeleteByPrefix", ctx, "bbbb2345/").Return(1, nil).Once()
		repo.On("DeleteExpired", ctx, mock.Anything).Return(int64(2), nil).Once()

		deleted, err := svc.CleanupExpired(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		images.AssertExpectations(t)
	})

	t.Run("Nothing expired", func(t *testing.T) {
		repo := new(mockCreatureRepo)
		images := new(mockImageStore)
		svc := service.NewCleanupService(repo, images, zap.NewNop())

		repo.On("ListExpiredIDs", ctx, mock.Anything).Return([]string{}, nil).Once()
		repo.On("DeleteExpired", ctx, mock.Anything).Return(int64(0), nil).Once()

		deleted, err := svc.CleanupExpired(ctx)

		require.NoError(t, err)
		assert.Zero(t, deleted)
		images.AssertNotCalled(t, "DeleteByPrefix", mock.Anything, mock.Anything)
	})
}
