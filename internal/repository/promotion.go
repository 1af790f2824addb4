package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"idle-redeemer/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type PromotionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPromotionRepository(sqlDB *sql.DB, logger zerolog.Logger) *PromotionRepository {
	return &PromotionRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// GetOrCreate returns the promotion for code, inserting it first if this is
// the first time the code has been observed. The boolean reports whether a
// new row was created.
func (r *PromotionRepository) GetOrCreate(ctx context.Context, code string) (*domain.Promotion, bool, error) {
	promo, err := r.GetByCode(ctx, code)
	if err == nil {
		return promo, false, nil
	}
	if !errors.Is(err, ErrPromotionNotFound) {
		return nil, false, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, false, err
	}
	now := time.Now().UTC()

	// ON CONFLICT keeps this idempotent if two runs race on the same code.
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO promotions (id, code, expires_at, created_at)
		VALUES (?, ?, NULL, ?)
		ON CONFLICT (code) DO NOTHING`, id, code, now)
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to insert promotion")
		return nil, false, err
	}

	promo, err = r.GetByCode(ctx, code)
	if err != nil {
		return nil, false, err
	}

	created := promo.ID == id
	if created {
		r.logger.Debug().Str("code", code).Msg("promotion created")
	}
	return promo, created, nil
}

func (r *PromotionRepository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, code, expires_at, created_at
		FROM promotions WHERE code = ?`, code)

	var p domain.Promotion
	var expiresAt sql.NullTime
	err := row.Scan(&p.ID, &p.Code, &expiresAt, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		p.ExpiresAt = &expiresAt.Time
	}
	return &p, nil
}

func (r *PromotionRepository) List(ctx context.Context) ([]domain.Promotion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, expires_at, created_at
		FROM promotions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []domain.Promotion
	for rows.Next() {
		var p domain.Promotion
		var expiresAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Code, &expiresAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		if expiresAt.Valid {
			p.ExpiresAt = &expiresAt.Time
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}
