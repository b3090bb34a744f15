package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/logger"
)

// RegistryInfo describes this registry in the discovery document served at
// /.well-known/mcp.json.
type RegistryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Version     string `json:"version"`
}

type DiscoveryHandler struct {
	log  *logger.Logger
	info RegistryInfo
}

func NewDiscoveryHandler(log *logger.Logger, info RegistryInfo) *DiscoveryHandler {
	return &DiscoveryHandler{
		log:  log.With("handler", "DiscoveryHandler"),
		info: info,
	}
}

func (h *DiscoveryHandler) WellKnown(c *gin.Context) {
	RespondOK(c, gin.H{"registries": []RegistryInfo{h.info}})
}
