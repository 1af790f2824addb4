package service

import (
	"context"
	"time"

	"idle-redeemer/internal/api"
	"idle-redeemer/internal/constants"
	"idle-redeemer/internal/loot"
	"idle-redeemer/internal/promos"
	"idle-redeemer/internal/repository"

	"github.com/rs/zerolog"
)

// RedemptionService drives one batch: list the active codes, skip the ones
// this platform already attempted, redeem the rest one at a time with a
// fixed pause between calls.
type RedemptionService struct {
	platforms   *repository.PlatformRepository
	promotions  *repository.PromotionRepository
	redemptions *repository.RedemptionRepository
	source      *promos.Source
	clients     *api.Factory
	sleep       func(time.Duration)
	logger      zerolog.Logger
}

func NewRedemptionService(
	platforms *repository.PlatformRepository,
	promotions *repository.PromotionRepository,
	redemptions *repository.RedemptionRepository,
	source *promos.Source,
	clients *api.Factory,
	logger zerolog.Logger,
) *RedemptionService {
	return &RedemptionService{
		platforms:   platforms,
		promotions:  promotions,
		redemptions: redemptions,
		source:      source,
		clients:     clients,
		sleep:       time.Sleep,
		logger:      logger,
	}
}

type RunReport struct {
	Codes    int
	Redeemed int
	Skipped  int
	Failed   int
}

// Run redeems all currently listed promotions for the platform identified
// by key. Failures on individual promotions are logged and recorded in the
// report; they never abort the rest of the batch.
func (s *RedemptionService) Run(ctx context.Context, platformKey string) (*RunReport, error) {
	platform, err := s.platforms.GetByKey(ctx, platformKey)
	if err != nil {
		return nil, err
	}

	codes, err := s.source.Latest(ctx)
	if err != nil {
		return nil, err
	}

	client := s.clients.ForPlatform(platform)
	logger := s.logger.With().Str("platform", platform.Key).Logger()
	logger.Info().Int("codes", len(codes)).Msg("starting redemption run")

	report := &RunReport{Codes: len(codes)}
	for i, code := range codes {
		if i > 0 {
			s.sleep(constants.RedeemPacing)
		}

		codeLogger := logger.With().Str("code", code).Logger()
		codeLogger.Info().Msg("processing promotion")

		promotion, _, err := s.promotions.GetOrCreate(ctx, code)
		if err != nil {
			codeLogger.Error().Err(err).Msg("failed to get or create promotion")
			report.Failed++
			continue
		}

		exists, err := s.redemptions.Exists(ctx, promotion.ID, platform.ID)
		if err != nil {
			codeLogger.Error().Err(err).Msg("failed to check redemption ledger")
			report.Failed++
			continue
		}
		if exists {
			codeLogger.Debug().Msg("already redeemed, skipping")
			report.Skipped++
			continue
		}

		params := api.BaseParams().
			Set("user_id", platform.UserID).
			Set("hash", platform.Hash).
			Set("instance_id", platform.InstanceID).
			Set("code", api.EscapeCode(code))

		payload, err := client.Call(ctx, "redeemcoupon", params)
		if err != nil {
			// an unhandled API failure kills this promotion only
			codeLogger.Error().Err(err).Msg("redeem call failed")
			report.Failed++
			continue
		}

		message := loot.SummarizeSafe(payload.Raw)
		if _, err := s.redemptions.Create(ctx, promotion.ID, platform.ID, message); err != nil {
			codeLogger.Error().Err(err).Msg("failed to record redemption")
			report.Failed++
			continue
		}

		codeLogger.Info().Str("message", message).Msg("promotion redeemed")
		report.Redeemed++
	}

	logger.Info().
		Int("codes", report.Codes).
		Int("redeemed", report.Redeemed).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("redemption run finished")

	return report, nil
}
