package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"idle-redeemer/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type RedemptionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRedemptionRepository(sqlDB *sql.DB, logger zerolog.Logger) *RedemptionRepository {
	return &RedemptionRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Exists reports whether a redemption has already been recorded for the
// (promotion, platform) pair.
func (r *RedemptionRepository) Exists(ctx context.Context, promotionID, platformID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM redemptions WHERE promotion_id = ? AND platform_id = ?`,
		promotionID, platformID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedemptionRepository) Create(ctx context.Context, promotionID, platformID, message string) (*domain.Redemption, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}
	now := time.Now().UTC()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO redemptions (id, promotion_id, platform_id, message, created_at)
		VALUES (?, ?, ?, ?, ?)`, id, promotionID, platformID, message, now)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("promotion_id", promotionID).
			Str("platform_id", platformID).
			Msg("failed to insert redemption")
		return nil, err
	}

	return &domain.Redemption{
		ID:          id,
		PromotionID: promotionID,
		PlatformID:  platformID,
		Message:     message,
		CreatedAt:   now,
	}, nil
}

func (r *RedemptionRepository) ListByPlatform(ctx context.Context, platformID string) ([]domain.Redemption, error) {
	return r.list(ctx, `
		SELECT id, promotion_id, platform_id, message, created_at
		FROM redemptions WHERE platform_id = ?
		ORDER BY created_at DESC`, platformID)
}

func (r *RedemptionRepository) ListByCode(ctx context.Context, code string) ([]domain.Redemption, error) {
	return r.list(ctx, `
		SELECT r.id, r.promotion_id, r.platform_id, r.message, r.created_at
		FROM redemptions r
		JOIN promotions p ON p.id = r.promotion_id
		WHERE p.code = ?
		ORDER BY r.created_at DESC`, code)
}

func (r *RedemptionRepository) list(ctx context.Context, query string, arg any) ([]domain.Redemption, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var redemptions []domain.Redemption
	for rows.Next() {
		var red domain.Redemption
		if err := rows.Scan(&red.ID, &red.PromotionID, &red.PlatformID, &red.Message, &red.CreatedAt); err != nil {
			return nil, err
		}
		redemptions = append(redemptions, red)
	}
	return redemptions, rows.Err()
}
