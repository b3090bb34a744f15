package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/middleware"
)

type Middleware struct {
	Auth gin.HandlerFunc
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.RequireAuth(log, serviceset.Auth),
	}
}
