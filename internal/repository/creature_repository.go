package repository

import (
	"context"
	"time"

	"creature-server/internal/models"
)

// CreatureRepository persists creature generation results.
type CreatureRepository interface {
	Create(ctx context.Context, creature *models.Creature) error
	GetByShortID(ctx context.Context, shortID string) (*models.Creature, error)
	Exists(ctx context.Context, shortID string) (bool, error)
	// ListAll returns every creature, newest first. Admin use.
	ListAll(ctx context.Context) ([]models.Creature, error)
	// ListExpiredIDs returns the short ids of creatures expired at now.
	ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error)
	Delete(ctx context.Context, shortID string) error
	// DeleteExpired removes every creature expired at now and returns the
	// number of deleted rows.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
