package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/services"
)

type UserHandler struct {
	log  *logger.Logger
	user services.UserService
}

func NewUserHandler(log *logger.Logger, user services.UserService) *UserHandler {
	return &UserHandler{
		log:  log.With("handler", "UserHandler"),
		user: user,
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	me, err := h.user.GetMe(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, me)
}
