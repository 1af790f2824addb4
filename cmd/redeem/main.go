package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"idle-redeemer/internal/config"
	"idle-redeemer/internal/constants"
	fxmodules "idle-redeemer/internal/fx"
	"idle-redeemer/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: redeem <platform-key>")
		os.Exit(2)
	}
	platformKey := os.Args[1]

	exitCode := 0
	app := fx.New(
		fxmodules.Module,
		fx.Invoke(func(
			lc fx.Lifecycle,
			shutdowner fx.Shutdowner,
			svc *service.RedemptionService,
			cfg *config.Config,
			db *sql.DB,
			logger zerolog.Logger,
		) {
			if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				logger = logger.Level(level)
			}
			runLogger := logger.With().
				Str("run_id", uuid.New().String()).
				Str("platform", platformKey).
				Logger()

			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						defer func() { _ = shutdowner.Shutdown() }()

						ctx, cancel := context.WithTimeout(context.Background(), constants.RunTimeout)
						defer cancel()

						report, err := svc.Run(ctx, platformKey)
						if err != nil {
							runLogger.Error().Err(err).Msg("redemption run failed")
							exitCode = 1
							return
						}
						runLogger.Info().
							Int("redeemed", report.Redeemed).
							Int("skipped", report.Skipped).
							Int("failed", report.Failed).
							Msg("done")
					}()
					return nil
				},
				OnStop: func(context.Context) error {
					return db.Close()
				},
			})
		}),
	)

	app.Run()
	os.Exit(exitCode)
}
