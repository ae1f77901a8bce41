package handlers

import (
	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/middleware"
	"medicloud-backend/internal/validation"
)

// bindJSON decodes and validates the body. On failure the validation error is
// queued for ErrorHandler and false is returned.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(validation.Error(err))
		return false
	}
	return true
}

// tenantID is only valid on routes behind TenantMiddleware.
func tenantID(c *gin.Context) string {
	tenant, _ := middleware.TenantFrom(c)
	if tenant == nil {
		return ""
	}
	return tenant.ID
}
