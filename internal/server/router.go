package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yigyaps/yigyaps/internal/handlers"
)

type RouterConfig struct {
	ServiceName         string
	AllowedOrigins      []string
	AuthMiddleware      gin.HandlerFunc
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	PackageHandler      *handlers.PackageHandler
	ReviewHandler       *handlers.ReviewHandler
	InstallationHandler *handlers.InstallationHandler
	MintHandler         *handlers.MintHandler
	RoyaltyHandler      *handlers.RoyaltyHandler
	DiscoveryHandler    *handlers.DiscoveryHandler
	HealthcheckHandler  *handlers.HealthcheckHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-API-Key", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.GET("/.well-known/mcp.json", cfg.DiscoveryHandler.WellKnown)

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/login", cfg.AuthHandler.Login)
		// Catalog reads are anonymous.
		v1.GET("/packages", cfg.PackageHandler.Search)
		v1.GET("/packages/by-name/:packageId", cfg.PackageHandler.GetByPackageID)
		v1.GET("/packages/:id", cfg.PackageHandler.GetByID)
		v1.GET("/packages/:id/reviews", cfg.ReviewHandler.ListByPackage)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/v1")
	protected.Use(cfg.AuthMiddleware)
	{
		protected.GET("/auth/me", cfg.UserHandler.GetMe)
		// Catalog
		protected.POST("/packages", cfg.PackageHandler.Publish)
		protected.DELETE("/packages/:id", cfg.PackageHandler.Delete)
		// Reviews
		protected.POST("/packages/:id/reviews", cfg.ReviewHandler.Create)
		protected.PATCH("/reviews/:id", cfg.ReviewHandler.Update)
		protected.DELETE("/reviews/:id", cfg.ReviewHandler.Delete)
		// Installations
		protected.POST("/installations", cfg.InstallationHandler.Create)
		protected.GET("/installations", cfg.InstallationHandler.List)
		protected.PATCH("/installations/:id", cfg.InstallationHandler.UpdateStatus)
		// Mints
		protected.POST("/mints", cfg.MintHandler.Create)
		protected.GET("/mints", cfg.MintHandler.ListMine)
		// Royalties
		protected.GET("/royalties/me", cfg.RoyaltyHandler.Me)
	}

	return router
}
