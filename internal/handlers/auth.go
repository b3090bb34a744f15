package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/services"
)

type AuthHandler struct {
	log  *logger.Logger
	auth services.AuthService
}

func NewAuthHandler(log *logger.Logger, auth services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:  log.With("handler", "AuthHandler"),
		auth: auth,
	}
}

type loginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondValidation(c, "invalid request body: %v", err)
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}
