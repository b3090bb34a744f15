package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
)

type HealthcheckHandler struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewHealthcheckHandler(log *logger.Logger, gdb *gorm.DB) *HealthcheckHandler {
	return &HealthcheckHandler{
		log: log.With("handler", "HealthcheckHandler"),
		db:  gdb,
	}
}

func (h *HealthcheckHandler) Healthcheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(503, gin.H{"status": "degraded"})
		return
	}
	RespondOK(c, gin.H{"status": "ok"})
}
