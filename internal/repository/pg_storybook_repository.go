package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"creature-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ StorybookRepository = (*pgStorybookRepository)(nil)

type pgStorybookRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgStorybookRepository(db DBTX, logger *zap.Logger) StorybookRepository {
	return &pgStorybookRepository{
		db:     db,
		logger: logger.Named("PgStorybookRepo"),
	}
}

func (r *pgStorybookRepository) Create(ctx context.Context, deviceID, bookName string) (*models.Storybook, error) {
	query := `
        INSERT INTO storybooks (device_id, book_name)
        VALUES ($1, $2)
        RETURNING id, device_id, book_name, cover_image_url, created_at, updated_at
    `
	book := &models.Storybook{}
	err := r.db.QueryRow(ctx, query, deviceID, bookName).Scan(
		&book.ID, &book.DeviceID, &book.BookName, &book.CoverImageURL,
		&book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create storybook", zap.String("deviceID", deviceID), zap.Error(err))
		return nil, fmt.Errorf("failed to create storybook: %w", err)
	}
	r.logger.Info("Storybook created",
		zap.Int64("storybookID", book.ID),
		zap.String("deviceID", deviceID))
	return book, nil
}

func (r *pgStorybookRepository) GetByID(ctx context.Context, id int64) (*models.Storybook, error) {
	query := `
        SELECT id, device_id, book_name, cover_image_url, created_at, updated_at
        FROM storybooks
        WHERE id = $1
    `
	book := &models.Storybook{}
	err := pgxscan.Get(ctx, r.db, book, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get storybook", zap.Int64("storybookID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get storybook %d: %w", id, err)
	}
	return book, nil
}

func (r *pgStorybookRepository) GetLatestByDevice(ctx context.Context, deviceID string) (*models.Storybook, error) {
	query := `
        SELECT id, device_id, book_name, cover_image_url, created_at, updated_at
        FROM storybooks
        WHERE device_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	book := &models.Storybook{}
	err := pgxscan.Get(ctx, r.db, book, query, deviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get latest storybook", zap.String("deviceID", deviceID), zap.Error(err))
		return nil, fmt.Errorf("failed to get latest storybook for device: %w", err)
	}
	return book, nil
}

func (r *pgStorybookRepository) ListByDevice(ctx context.Context, deviceID string) ([]models.Storybook, error) {
	query := `
        SELECT id, device_id, book_name, cover_image_url, created_at, updated_at
        FROM storybooks
        WHERE device_id = $1
        ORDER BY created_at DESC
    `
	var books []models.Storybook
	if err := pgxscan.Select(ctx, r.db, &books, query, deviceID); err != nil {
		r.logger.Error("Failed to list storybooks", zap.String("deviceID", deviceID), zap.Error(err))
		return nil, fmt.Errorf("failed to list storybooks for device: %w", err)
	}
	return books, nil
}

func (r *pgStorybookRepository) UpdateName(ctx context.Context, id int64, bookName string) error {
	query := `UPDATE storybooks SET book_name = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, bookName)
	if err != nil {
		r.logger.Error("Failed to update storybook name", zap.Int64("storybookID", id), zap.Error(err))
		return fmt.Errorf("failed to update storybook %d name: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgStorybookRepository) UpdateCover(ctx context.Context, id int64, coverImageURL string) error {
	query := `UPDATE storybooks SET cover_image_url = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, coverImageURL)
	if err != nil {
		r.logger.Error("Failed to update storybook cover", zap.Int64("storybookID", id), zap.Error(err))
		return fmt.Errorf("failed to update storybook %d cover: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgStorybookRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM storybooks WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete storybook", zap.Int64("storybookID", id), zap.Error(err))
		return fmt.Errorf("failed to delete storybook %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Storybook deleted", zap.Int64("storybookID", id))
	return nil
}

func (r *pgStorybookRepository) ListEntries(ctx context.Context, storybookID int64) ([]models.StorybookEntry, error) {
	query := `
        SELECT e.id, e.storybook_id, e.creature_short_id, e.page_number, e.added_at,
               c.creature_data
        FROM storybook_entries e
        LEFT JOIN creatures c ON c.short_id = e.creature_short_id
        WHERE e.storybook_id = $1
        ORDER BY e.page_number ASC
    `
	rows, err := r.db.Query(ctx, query, storybookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for storybook %d: %w", storybookID, err)
	}
	defer rows.Close()

	var entries []models.StorybookEntry
	for rows.Next() {
		var entry models.StorybookEntry
		var data []byte
		if err := rows.Scan(&entry.ID, &entry.StorybookID, &entry.CreatureShortID,
			&entry.PageNumber, &entry.AddedAt, &data); err != nil {
			return nil, fmt.Errorf("failed to scan storybook entry: %w", err)
		}
		if len(data) > 0 {
			creature := &models.CreatureData{}
			if err := json.Unmarshal(data, creature); err != nil {
				return nil, fmt.Errorf("failed to unmarshal creature data for entry %d: %w", entry.ID, err)
			}
			entry.Creature = creature
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate storybook entries: %w", err)
	}
	return entries, nil
}

func (r *pgStorybookRepository) MaxPageNumber(ctx context.Context, storybookID int64) (int, error) {
	query := `SELECT COALESCE(MAX(page_number), 0) FROM storybook_entries WHERE storybook_id = $1`

	var maxPage int
	if err := r.db.QueryRow(ctx, query, storybookID).Scan(&maxPage); err != nil {
		r.logger.Error("Failed to get max page number", zap.Int64("storybookID", storybookID), zap.Error(err))
		return 0, fmt.Errorf("failed to get max page number for storybook %d: %w", storybookID, err)
	}
	return maxPage, nil
}

func (r *pgStorybookRepository) InsertEntry(ctx context.Context, storybookID int64, creatureShortID string, pageNumber int) (*models.StorybookEntry, error) {
	query := `
        INSERT INTO storybook_entries (storybook_id, creature_short_id, page_number)
        VALUES ($1, $2, $3)
        RETURNING id, storybook_id, creature_short_id, page_number, added_at
    `
	entry := &models.StorybookEntry{}
	err := r.db.QueryRow(ctx, query, storybookID, creatureShortID, pageNumber).Scan(
		&entry.ID, &entry.StorybookID, &entry.CreatureShortID, &entry.PageNumber, &entry.AddedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert storybook entry",
			zap.Int64("storybookID", storybookID),
			zap.String("creatureShortID", creatureShortID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to insert entry into storybook %d: %w", storybookID, err)
	}
	r.logger.Info("Storybook entry added",
		zap.Int64("storybookID", storybookID),
		zap.String("creatureShortID", creatureShortID),
		zap.Int("pageNumber", pageNumber))
	return entry, nil
}

func (r *pgStorybookRepository) UpdateEntryPage(ctx context.Context, storybookID, entryID int64, pageNumber int) error {
	query := `UPDATE storybook_entries SET page_number = $3 WHERE id = $1 AND storybook_id = $2`

	tag, err := r.db.Exec(ctx, query, entryID, storybookID, pageNumber)
	if err != nil {
		r.logger.Error("Failed to update entry page number",
			zap.Int64("entryID", entryID),
			zap.Error(err))
		return fmt.Errorf("failed to update page number for entry %d: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgStorybookRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	query := `DELETE FROM storybook_entries WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, entryID)
	if err != nil {
		r.logger.Error("Failed to delete storybook entry", zap.Int64("entryID", entryID), zap.Error(err))
		return fmt.Errorf("failed to delete entry %d: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgStorybookRepository) EntryExists(ctx context.Context, storybookID int64, creatureShortID string) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM storybook_entries
            WHERE storybook_id = $1 AND creature_short_id = $2
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, storybookID, creatureShortID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check entry existence",
			zap.Int64("storybookID", storybookID),
			zap.String("creatureShortID", creatureShortID),
			zap.Error(err))
		return false, fmt.Errorf("failed to check entry existence: %w", err)
	}
	return exists, nil
}
