package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"creature-server/internal/ai"
	"creature-server/internal/models"
	"creature-server/internal/prompt"
	"creature-server/internal/repository"
	"creature-server/internal/storage"

	"go.uber.org/zap"
)

// DefaultBookName is used when a storybook is created without a name.
const DefaultBookName = "My Magical Storybook"

// StorybookService manages per-device storybook collections and their
// creature entries.
type StorybookService struct {
	books     repository.StorybookRepository
	creatures repository.CreatureRepository
	images    storage.ImageStore
	ai        ai.Client
	logger    *zap.Logger

	generateCovers bool
	coverTimeout   time.Duration
}

func NewStorybookService(
	books repository.StorybookRepository,
	creatures repository.CreatureRepository,
	images storage.ImageStore,
	aiClient ai.Client,
	generateCovers bool,
	coverTimeout time.Duration,
	logger *zap.Logger,
) *StorybookService {
	return &StorybookService{
		books:          books,
		creatures:      creatures,
		images:         images,
		ai:             aiClient,
		generateCovers: generateCovers,
		coverTimeout:   coverTimeout,
		logger:         logger.Named("StorybookService"),
	}
}

// CreateStorybook inserts a new book for the device. When cover generation
// is enabled, a cover image is produced in the background; the book is
// returned immediately and a cover failure never fails creation.
func (s *StorybookService) CreateStorybook(ctx context.Context, deviceID, bookName string) (*models.Storybook, error) {
	name := strings.TrimSpace(bookName)
	if name == "" {
		name = DefaultBookName
	}
	book, err := s.books.Create(ctx, deviceID, name)
	if err != nil {
		return nil, fmt.Errorf("create storybook: %w", err)
	}
	s.logger.Info("Storybook created",
		zap.Int64("storybookId", book.ID),
		zap.String("deviceId", deviceID),
		zap.String("bookName", name))

	if s.generateCovers {
		go s.generateCover(book.ID, name)
	}
	return book, nil
}

// generateCover runs detached from the request context so a slow image
// provider cannot hold the creation response.
func (s *StorybookService) generateCover(storybookID int64, bookName string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Cover generation panicked", zap.Int64("storybookId", storybookID), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.coverTimeout)
	defer cancel()

	url, err := s.ai.GenerateImage(ctx, prompt.CoverRequest(bookName))
	if err != nil {
		s.logger.Info("Cover generation unavailable", zap.Int64("storybookId", storybookID), zap.Error(err))
		return
	}

	key := fmt.Sprintf("storybooks/storybook-%d-cover-%d.png", storybookID, time.Now().UnixMilli())
	stored, err := s.images.StoreFromURL(ctx, url, key)
	if err != nil {
		s.logger.Warn("Cover re-host failed, keeping provider URL",
			zap.Int64("storybookId", storybookID), zap.Error(err))
		stored = url
	}

	if err := s.books.UpdateCover(ctx, storybookID, stored); err != nil {
		s.logger.Warn("Failed to store cover URL", zap.Int64("storybookId", storybookID), zap.Error(err))
		return
	}
	s.logger.Info("Storybook cover generated", zap.Int64("storybookId", storybookID))
}

// GetStorybook returns the device's most recent storybook with its entries,
// or models.ErrNotFound when the device has none.
func (s *StorybookService) GetStorybook(ctx context.Context, deviceID string) (*models.Storybook, error) {
	book, err := s.books.GetLatestByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if err := s.attachEntries(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetAllStorybooks lists the device's storybooks, newest first, each with
// its entries attached.
func (s *StorybookService) GetAllStorybooks(ctx context.Context, deviceID string) ([]models.Storybook, error) {
	books, err := s.books.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if err := s.attachEntries(ctx, &books[i]); err != nil {
			return nil, err
		}
	}
	return books, nil
}

// GetStorybookByID returns one storybook with entries.
func (s *StorybookService) GetStorybookByID(ctx context.Context, id int64) (*models.Storybook, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachEntries(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// IsCreatureInStorybook reports whether the creature is already an entry of
// the target book. With no storybookID (0) the device's most recent book is
// checked; a device without books yields false.
func (s *StorybookService) IsCreatureInStorybook(ctx context.Context, deviceID, creatureID string, storybookID int64) (bool, error) {
	creatureID = sanitizeCreatureID(creatureID)
	targetID := storybookID
	if targetID == 0 {
		book, err := s.books.GetLatestByDevice(ctx, deviceID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		targetID = book.ID
	}
	return s.books.EntryExists(ctx, targetID, creatureID)
}

// AddStoryToBook adds a saved creature to a storybook as its next page.
// The target book resolves in order: the given ID if it belongs to the
// device, the device's most recent book, otherwise a newly created default
// book.
func (s *StorybookService) AddStoryToBook(ctx context.Context, deviceID, creatureID string, storybookID int64) (*models.StorybookEntry, error) {
	creatureID = sanitizeCreatureID(creatureID)

	exists, err := s.creatures.Exists(ctx, creatureID)
	if err != nil {
		return nil, fmt.Errorf("check creature: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("creature %q: %w", creatureID, models.ErrNotFound)
	}

	book, err := s.resolveBook(ctx, deviceID, storybookID)
	if err != nil {
		return nil, err
	}

	maxPage, err := s.books.MaxPageNumber(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("next page number: %w", err)
	}

	entry, err := s.books.InsertEntry(ctx, book.ID, creatureID, maxPage+1)
	if err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	s.logger.Info("Creature added to storybook",
		zap.Int64("storybookId", book.ID),
		zap.String("creatureId", creatureID),
		zap.Int("pageNumber", entry.PageNumber))
	return entry, nil
}

func (s *StorybookService) resolveBook(ctx context.Context, deviceID string, storybookID int64) (*models.Storybook, error) {
	if storybookID != 0 {
		book, err := s.books.GetByID(ctx, storybookID)
		if err == nil && book.DeviceID == deviceID {
			return book, nil
		}
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		// Unknown or foreign book falls through to the device default.
	}

	book, err := s.books.GetLatestByDevice(ctx, deviceID)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	return s.CreateStorybook(ctx, deviceID, "")
}

// ReorderStories rewrites page numbers to match the given entry order,
// assigning 1-based positions. Updates are applied one by one; a failure
// mid-sequence is logged and the remaining updates continue.
func (s *StorybookService) ReorderStories(ctx context.Context, storybookID int64, entryIDs []int64) error {
	if _, err := s.books.GetByID(ctx, storybookID); err != nil {
		return err
	}
	var failed int
	for i, entryID := range entryIDs {
		if err := s.books.UpdateEntryPage(ctx, storybookID, entryID, i+1); err != nil {
			failed++
			s.logger.Warn("Failed to reorder entry",
				zap.Int64("storybookId", storybookID),
				zap.Int64("entryId", entryID),
				zap.Int("pageNumber", i+1),
				zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("reorder: %d of %d updates failed", failed, len(entryIDs))
	}
	return nil
}

// RemoveStoryFromBook deletes one entry.
func (s *StorybookService) RemoveStoryFromBook(ctx context.Context, entryID int64) error {
	return s.books.DeleteEntry(ctx, entryID)
}

// DeleteStorybook removes the book; entries cascade in the database.
func (s *StorybookService) DeleteStorybook(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}

// UpdateStorybookName renames the book.
func (s *StorybookService) UpdateStorybookName(ctx context.Context, id int64, bookName string) error {
	name := strings.TrimSpace(bookName)
	if name == "" {
		return fmt.Errorf("book name: %w", models.ErrInvalidInput)
	}
	return s.books.UpdateName(ctx, id, name)
}

// UpdateStorybookCover sets the cover image URL.
func (s *StorybookService) UpdateStorybookCover(ctx context.Context, id int64, coverURL string) error {
	if strings.TrimSpace(coverURL) == "" {
		return fmt.Errorf("cover url: %w", models.ErrInvalidInput)
	}
	return s.books.UpdateCover(ctx, id, coverURL)
}

func (s *StorybookService) attachEntries(ctx context.Context, book *models.Storybook) error {
	entries, err := s.books.ListEntries(ctx, book.ID)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	book.Entries = entries
	return nil
}

// sanitizeCreatureID strips query strings and file extensions that clients
// sometimes append when sharing links ("abc123?x=1", "abc123.png").
func sanitizeCreatureID(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.Index(id, "?"); i >= 0 {
		id = id[:i]
	}
	if i := strings.Index(id, "."); i >= 0 {
		id = id[:i]
	}
	return id
}
