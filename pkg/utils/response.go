package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func APIResponse(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// APIError aborts the chain. details is omitted when nil.
func APIError(c *gin.Context, code int, errMessage string, details interface{}) {
	c.AbortWithStatusJSON(code, Response{
		Success: false,
		Error:   errMessage,
		Details: details,
	})
}
