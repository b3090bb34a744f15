package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/handlers"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/services"
)

// RequireAuth resolves the caller from "Authorization: Bearer <credential>" or
// the X-API-Key header and stores the principal on the request context.
func RequireAuth(log *logger.Logger, auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ""
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				handlers.RespondError(c, apierr.New(apierr.KindUnauthenticated, "authorization header must be \"Bearer <credential>\""))
				return
			}
			credential = parts[1]
		} else {
			credential = c.GetHeader("X-API-Key")
		}
		if credential == "" {
			handlers.RespondError(c, apierr.New(apierr.KindUnauthenticated, "missing credentials"))
			return
		}

		ctx, err := auth.SetContextFromBearer(c.Request.Context(), credential)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
