package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/pkg/utils"
)

const redactedMessage = "Internal server error."

// ErrorHandler renders the last error pushed with c.Error. Outside
// development the message of a 500 is replaced with a generic one.
func ErrorHandler(log *zap.Logger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.Classify(c.Errors.Last().Err)
		status := appErr.Status()
		message := appErr.Message

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.String("kind", appErr.Kind.String()),
			zap.Error(c.Errors.Last().Err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
			if !development {
				message = redactedMessage
			}
		} else {
			log.Debug("request rejected", fields...)
		}

		var details interface{}
		if len(appErr.Details) > 0 {
			details = appErr.Details
		}
		utils.APIError(c, status, message, details)
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		utils.APIError(c, http.StatusInternalServerError, redactedMessage, nil)
	})
}

func NoRoute(c *gin.Context) {
	utils.APIError(c, http.StatusNotFound, fmt.Sprintf("Route %s %s not found.", c.Request.Method, c.Request.URL.Path), nil)
}
