package repository

import (
	"context"

	"creature-server/internal/models"
)

// StorybookRepository persists storybooks and their ordered entries.
type StorybookRepository interface {
	Create(ctx context.Context, deviceID, bookName string) (*models.Storybook, error)
	GetByID(ctx context.Context, id int64) (*models.Storybook, error)
	// GetLatestByDevice returns the most recently created storybook for the
	// device, or ErrNotFound.
	GetLatestByDevice(ctx context.Context, deviceID string) (*models.Storybook, error)
	ListByDevice(ctx context.Context, deviceID string) ([]models.Storybook, error)
	UpdateName(ctx context.Context, id int64, bookName string) error
	UpdateCover(ctx context.Context, id int64, coverImageURL string) error
	// Delete removes the storybook; entries cascade at the storage layer.
	Delete(ctx context.Context, id int64) error

	// ListEntries returns the storybook's entries ordered by page number,
	// each enriched with the joined creature payload.
	ListEntries(ctx context.Context, storybookID int64) ([]models.StorybookEntry, error)
	// MaxPageNumber returns the highest page number in the storybook, or 0
	// when it has no entries.
	MaxPageNumber(ctx context.Context, storybookID int64) (int, error)
	InsertEntry(ctx context.Context, storybookID int64, creatureShortID string, pageNumber int) (*models.StorybookEntry, error)
	UpdateEntryPage(ctx context.Context, storybookID, entryID int64, pageNumber int) error
	DeleteEntry(ctx context.Context, entryID int64) error
	EntryExists(ctx context.Context, storybookID int64, creatureShortID string) (bool, error)
}
