package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:         cfg.RegistryName,
		AllowedOrigins:      cfg.AllowedOrigins,
		AuthMiddleware:      mw.Auth,
		AuthHandler:         handlerset.Auth,
		UserHandler:         handlerset.User,
		PackageHandler:      handlerset.Package,
		ReviewHandler:       handlerset.Review,
		InstallationHandler: handlerset.Installation,
		MintHandler:         handlerset.Mint,
		RoyaltyHandler:      handlerset.Royalty,
		DiscoveryHandler:    handlerset.Discovery,
		HealthcheckHandler:  handlerset.Healthcheck,
	})
}
