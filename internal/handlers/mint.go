package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/services"
)

type MintHandler struct {
	log  *logger.Logger
	mint services.MintService
}

func NewMintHandler(log *logger.Logger, mint services.MintService) *MintHandler {
	return &MintHandler{
		log:  log.With("handler", "MintHandler"),
		mint: mint,
	}
}

type mintRequest struct {
	PackageID uuid.UUID `json:"packageId"`
}

func (h *MintHandler) Create(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondValidation(c, "invalid request body: %v", err)
		return
	}
	if req.PackageID == uuid.Nil {
		RespondValidation(c, "packageId is required")
		return
	}
	mint, err := h.mint.Mint(c.Request.Context(), req.PackageID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, mint)
}

func (h *MintHandler) ListMine(c *gin.Context) {
	limit := queryInt(c, "limit", repos.DefaultPageLimit)
	offset := queryInt(c, "offset", 0)
	results, total, err := h.mint.ListMine(c.Request.Context(), limit, offset)
	if err != nil {
		RespondError(c, err)
		return
	}
	limit, offset = repos.ClampPage(limit, offset)
	RespondPage(c, results, total, limit, offset)
}
