package service

import (
	"context"
	"fmt"
	"time"

	"creature-server/internal/models"
	"creature-server/internal/repository"
	"creature-server/internal/storage"

	"go.uber.org/zap"
)

// CleanupService backs the admin endpoints: listing creatures, deleting a
// single creature, and purging everything past its expiry.
type CleanupService struct {
	repo   repository.CreatureRepository
	images storage.ImageStore
	logger *zap.Logger
}

func NewCleanupService(repo repository.CreatureRepository, images storage.ImageStore, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		repo:   repo,
		images: images,
		logger: logger.Named("CleanupService"),
	}
}

// ListCreatures returns every stored creature, newest first.
func (s *CleanupService) ListCreatures(ctx context.Context) ([]models.Creature, error) {
	return s.repo.ListAll(ctx)
}

// DeleteCreature removes one creature and its stored images. Object storage
// failures are logged but do not block the row delete.
func (s *CleanupService) DeleteCreature(ctx context.Context, shortID string) error {
	s.deleteImages(ctx, shortID)
	if err := s.repo.Delete(ctx, shortID); err != nil {
		return err
	}
	s.logger.Info("Creature deleted", zap.String("shortId", shortID))
	return nil
}

// CleanupExpired deletes all creatures past their expiry together with
// their stored images and returns how many rows were removed.
func (s *CleanupService) CleanupExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	ids, err := s.repo.ListExpiredIDs(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list expired: %w", err)
	}
	for _, id := range ids {
		s.deleteImages(ctx, id)
	}
	deleted, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	s.logger.Info("Expired creatures cleaned up", zap.Int64("deleted", deleted))
	return deleted, nil
}

func (s *CleanupService) deleteImages(ctx context.Context, shortID string) {
	n, err := s.images.DeleteByPrefix(ctx, shortID+"/")
	if err != nil {
		s.logger.Warn("Failed to delete stored images",
			zap.String("shortId", shortID),
			zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Stored images deleted",
			zap.String("shortId", shortID),
			zap.Int("objects", n))
	}
}
