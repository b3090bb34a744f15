package app

import (
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/handlers"
	"github.com/yigyaps/yigyaps/internal/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Package      *handlers.PackageHandler
	Review       *handlers.ReviewHandler
	Installation *handlers.InstallationHandler
	Mint         *handlers.MintHandler
	Royalty      *handlers.RoyaltyHandler
	Discovery    *handlers.DiscoveryHandler
	Healthcheck  *handlers.HealthcheckHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         handlers.NewAuthHandler(log, serviceset.Auth),
		User:         handlers.NewUserHandler(log, serviceset.User),
		Package:      handlers.NewPackageHandler(log, serviceset.Catalog),
		Review:       handlers.NewReviewHandler(log, serviceset.Review),
		Installation: handlers.NewInstallationHandler(log, serviceset.Install),
		Mint:         handlers.NewMintHandler(log, serviceset.Mint),
		Royalty:      handlers.NewRoyaltyHandler(log, serviceset.Royalty),
		Discovery: handlers.NewDiscoveryHandler(log, handlers.RegistryInfo{
			Name:        cfg.RegistryName,
			Description: cfg.RegistryDescription,
			URL:         cfg.RegistryURL,
			Version:     cfg.RegistryVersion,
		}),
		Healthcheck: handlers.NewHealthcheckHandler(log, db),
	}
}
