package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/services"
)

type Services struct {
	Auth    services.AuthService
	User    services.UserService
	Catalog services.CatalogService
	Install services.InstallService
	Review  services.ReviewService
	Mint    services.MintService
	Royalty services.RoyaltyService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache *redis.Client) Services {
	log.Info("Wiring services...")
	catalog := services.NewCatalogService(db, log, reposet.Package, reposet.Review, reposet.User)
	return Services{
		Auth:    services.NewAuthService(db, log, reposet.User, reposet.ApiKey, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.ApiKeyTTL),
		User:    services.NewUserService(db, log, reposet.User, cache),
		Catalog: catalog,
		Install: services.NewInstallService(db, log, reposet.Package, reposet.Installation, reposet.Royalty, reposet.User),
		Review:  services.NewReviewService(db, log, reposet.Review, reposet.Package, catalog),
		Mint:    services.NewMintService(db, log, reposet.Mint, reposet.Package, reposet.Royalty, reposet.User),
		Royalty: services.NewRoyaltyService(db, log, reposet.Royalty),
	}
}
