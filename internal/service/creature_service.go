package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creature-server/internal/models"
	"creature-server/internal/repository"
	"creature-server/internal/shortid"
	"creature-server/internal/storage"

	"go.uber.org/zap"
)

const (
	creatureTTL        = 30 * 24 * time.Hour
	shortIDMaxAttempts = 5
	portraitImageLabel = "image"
	sceneImageLabel    = "scene"
)

// CreatureService persists generated creatures under share-friendly short
// IDs and re-hosts their provider image URLs into durable object storage.
type CreatureService struct {
	repo   repository.CreatureRepository
	images storage.ImageStore
	logger *zap.Logger
}

func NewCreatureService(repo repository.CreatureRepository, images storage.ImageStore, logger *zap.Logger) *CreatureService {
	return &CreatureService{
		repo:   repo,
		images: images,
		logger: logger.Named("CreatureService"),
	}
}

// Save stores the creature and returns its short ID. Provider image URLs
// are short-lived, so both are copied into object storage first; a failed
// copy keeps the original URL rather than losing the image reference.
func (s *CreatureService) Save(ctx context.Context, data models.CreatureData) (string, error) {
	shortID, err := s.newShortID(ctx)
	if err != nil {
		return "", err
	}

	data.StoryResult.ImageURL = s.rehost(ctx, shortID, portraitImageLabel, data.StoryResult.ImageURL)
	data.StoryResult.SceneImageURL = s.rehost(ctx, shortID, sceneImageLabel, data.StoryResult.SceneImageURL)

	now := time.Now().UTC()
	creature := &models.Creature{
		ShortID:   shortID,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(creatureTTL),
	}
	if err := s.repo.Create(ctx, creature); err != nil {
		return "", fmt.Errorf("save creature: %w", err)
	}

	s.logger.Info("Creature saved",
		zap.String("shortId", shortID),
		zap.String("name", data.CreatureDetails.Name),
		zap.Time("expiresAt", creature.ExpiresAt))
	return shortID, nil
}

// Get returns the stored creature data, or models.ErrNotFound when the ID
// is unknown or the row has been cleaned up.
func (s *CreatureService) Get(ctx context.Context, shortID string) (*models.CreatureData, error) {
	creature, err := s.repo.GetByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("Failed to load creature", zap.String("shortId", shortID), zap.Error(err))
		return nil, models.ErrNotFound
	}
	return &creature.Data, nil
}

// newShortID generates an ID and retries on the unlikely collision.
func (s *CreatureService) newShortID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < shortIDMaxAttempts; attempt++ {
		id := shortid.New()
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check short id: %w", err)
		}
		if !exists {
			return id, nil
		}
		s.logger.Warn("Short ID collision, retrying", zap.String("shortId", id))
	}
	return "", fmt.Errorf("generate short id: %w", models.ErrInternalServer)
}

// rehost copies a provider image into object storage and returns the durable
// URL. Nil input, already-durable URLs, and copy failures pass through.
func (s *CreatureService) rehost(ctx context.Context, shortID, label string, url *string) *string {
	if url == nil || *url == "" {
		return url
	}
	if s.images.IsDurable(*url) {
		return url
	}
	key := fmt.Sprintf("%s/%s-%s-%d.png", shortID, shortID, label, time.Now().UnixMilli())
	stored, err := s.images.StoreFromURL(ctx, *url, key)
	if err != nil {
		s.logger.Warn("Image re-host failed, keeping original URL",
			zap.String("shortId", shortID),
			zap.String("label", label),
			zap.Error(err))
		return url
	}
	return &stored
}
