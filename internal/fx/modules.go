package fx

import (
	"idle-redeemer/internal/api"
	"idle-redeemer/internal/config"
	"idle-redeemer/internal/database"
	"idle-redeemer/internal/logger"
	"idle-redeemer/internal/promos"
	"idle-redeemer/internal/repository"
	"idle-redeemer/internal/service"

	"go.uber.org/fx"
)

func ProvideInstanceStore(platforms *repository.PlatformRepository) api.InstanceStore {
	return platforms
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlatformRepository),
	fx.Provide(repository.NewPromotionRepository),
	fx.Provide(repository.NewRedemptionRepository),
	// api client
	fx.Provide(ProvideInstanceStore),
	fx.Provide(api.NewFactory),
	// promotion source
	fx.Provide(promos.NewCache),
	fx.Provide(promos.NewSource),
	// svc
	fx.Provide(service.NewRedemptionService),
)
