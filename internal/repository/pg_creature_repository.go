package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"creature-server/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ CreatureRepository = (*pgCreatureRepository)(nil)

type pgCreatureRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgCreatureRepository(db DBTX, logger *zap.Logger) CreatureRepository {
	return &pgCreatureRepository{
		db:     db,
		logger: logger.Named("PgCreatureRepo"),
	}
}

func (r *pgCreatureRepository) Create(ctx context.Context, creature *models.Creature) error {
	query := `
        INSERT INTO creatures (short_id, creature_data, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
    `
	data, err := json.Marshal(creature.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal creature data: %w", err)
	}

	logFields := []zap.Field{zap.String("shortID", creature.ShortID)}
	r.logger.Debug("Creating creature", logFields...)

	_, err = r.db.Exec(ctx, query, creature.ShortID, data, creature.CreatedAt, creature.ExpiresAt)
	if err != nil {
		r.logger.Error("Failed to create creature", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to insert creature %s: %w", creature.ShortID, err)
	}
	r.logger.Info("Creature created", logFields...)
	return nil
}

func (r *pgCreatureRepository) GetByShortID(ctx context.Context, shortID string) (*models.Creature, error) {
	query := `
        SELECT short_id, creature_data, created_at, expires_at
        FROM creatures
        WHERE short_id = $1
    `
	creature := &models.Creature{}
	var data []byte

	err := r.db.QueryRow(ctx, query, shortID).Scan(
		&creature.ShortID, &data, &creature.CreatedAt, &creature.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get creature", zap.String("shortID", shortID), zap.Error(err))
		return nil, fmt.Errorf("failed to get creature %s: %w", shortID, err)
	}

	if err := json.Unmarshal(data, &creature.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal creature data for %s: %w", shortID, err)
	}
	return creature, nil
}

func (r *pgCreatureRepository) Exists(ctx context.Context, shortID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM creatures WHERE short_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, shortID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check creature existence", zap.String("shortID", shortID), zap.Error(err))
		return false, fmt.Errorf("failed to check creature %s: %w", shortID, err)
	}
	return exists, nil
}

func (r *pgCreatureRepository) ListAll(ctx context.Context) ([]models.Creature, error) {
	query := `
        SELECT short_id, creature_data, created_at, expires_at
        FROM creatures
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list creatures: %w", err)
	}
	defer rows.Close()

	var creatures []models.Creature
	for rows.Next() {
		var creature models.Creature
		var data []byte
		if err := rows.Scan(&creature.ShortID, &data, &creature.CreatedAt, &creature.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan creature row: %w", err)
		}
		if err := json.Unmarshal(data, &creature.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal creature data for %s: %w", creature.ShortID, err)
		}
		creatures = append(creatures, creature)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate creature rows: %w", err)
	}
	return creatures, nil
}

func (r *pgCreatureRepository) ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error) {
	query := `SELECT short_id FROM creatures WHERE expires_at < $1`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired creatures: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expired creature id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expired creature rows: %w", err)
	}
	return ids, nil
}

func (r *pgCreatureRepository) Delete(ctx context.Context, shortID string) error {
	query := `DELETE FROM creatures WHERE short_id = $1`

	tag, err := r.db.Exec(ctx, query, shortID)
	if err != nil {
		r.logger.Error("Failed to delete creature", zap.String("shortID", shortID), zap.Error(err))
		return fmt.Errorf("failed to delete creature %s: %w", shortID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Creature deleted", zap.String("shortID", shortID))
	return nil
}

func (r *pgCreatureRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM creatures WHERE expires_at < $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.logger.Error("Failed to delete expired creatures", zap.Error(err))
		return 0, fmt.Errorf("failed to delete expired creatures: %w", err)
	}
	return tag.RowsAffected(), nil
}
