package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/services"
)

type RoyaltyHandler struct {
	log     *logger.Logger
	royalty services.RoyaltyService
}

func NewRoyaltyHandler(log *logger.Logger, royalty services.RoyaltyService) *RoyaltyHandler {
	return &RoyaltyHandler{
		log:     log.With("handler", "RoyaltyHandler"),
		royalty: royalty,
	}
}

func (h *RoyaltyHandler) Me(c *gin.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		RespondError(c, err)
		return
	}
	to, err := queryTime(c, "to")
	if err != nil {
		RespondError(c, err)
		return
	}
	limit := queryInt(c, "limit", repos.DefaultPageLimit)
	offset := queryInt(c, "offset", 0)
	summary, err := h.royalty.SummaryForCaller(c.Request.Context(), from, to, limit, offset)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}
