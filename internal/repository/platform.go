package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"idle-redeemer/internal/domain"

	"github.com/rs/zerolog"
)

var ErrPlatformNotFound = errors.New("platform not found")

type PlatformRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlatformRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlatformRepository {
	return &PlatformRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *PlatformRepository) GetByKey(ctx context.Context, key string) (*domain.Platform, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, key, hash, user_id, instance_id, created_at, updated_at
		FROM platforms WHERE key = ?`, key)

	platform, err := scanPlatform(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrPlatformNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return platform, nil
}

func (r *PlatformRepository) UpdateInstanceID(ctx context.Context, id, instanceID string) error {
	r.logger.Debug().
		Str("platform_id", id).
		Str("instance_id", instanceID).
		Msg("updating platform instance id")

	res, err := r.db.ExecContext(ctx, `
		UPDATE platforms SET instance_id = ?, updated_at = ? WHERE id = ?`,
		instanceID, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error().Err(err).Str("platform_id", id).Msg("failed to update instance id")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %s", ErrPlatformNotFound, id)
	}
	return nil
}

func (r *PlatformRepository) List(ctx context.Context) ([]domain.Platform, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, key, hash, user_id, instance_id, created_at, updated_at
		FROM platforms ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var platforms []domain.Platform
	for rows.Next() {
		platform, err := scanPlatform(rows)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, *platform)
	}
	return platforms, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlatform(row rowScanner) (*domain.Platform, error) {
	var p domain.Platform
	var instanceID sql.NullString
	if err := row.Scan(&p.ID, &p.Key, &p.Hash, &p.UserID, &instanceID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.InstanceID = instanceID.String
	return &p, nil
}
