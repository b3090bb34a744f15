package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/apierr"
)

// ErrorEnvelope is the uniform error body: human message, stable machine
// code, optional details.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// Page is the uniform pagination envelope.
type Page struct {
	Data   any   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func RespondError(c *gin.Context, err error) {
	kind := apierr.KindOf(err)
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(apierr.Status(kind), ErrorEnvelope{
		Error:   msg,
		Code:    apierr.Code(kind),
		Details: apierr.DetailsOf(err),
	})
}

func RespondValidation(c *gin.Context, format string, args ...any) {
	RespondError(c, apierr.New(apierr.KindValidation, format, args...))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondPage(c *gin.Context, data any, total int64, limit, offset int) {
	c.JSON(http.StatusOK, Page{Data: data, Total: total, Limit: limit, Offset: offset})
}
