package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/models"
)

const tenantKey = "tenant"

type TenantResolver interface {
	Resolve(ctx context.Context, slug string) (*models.Tenant, error)
}

// TenantMiddleware resolves the :tenant path segment on every request. When a
// caller is already authenticated, their token must belong to that tenant.
func TenantMiddleware(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := resolver.Resolve(c.Request.Context(), c.Param("tenant"))
		if err != nil {
			abort(c, err)
			return
		}

		if identity, ok := IdentityFrom(c); ok && identity.TenantID != tenant.ID {
			abort(c, apperror.Forbidden("Access denied. You do not belong to this clinic."))
			return
		}

		c.Set(tenantKey, tenant)
		c.Next()
	}
}

func TenantFrom(c *gin.Context) (*models.Tenant, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return nil, false
	}
	tenant, ok := v.(*models.Tenant)
	return tenant, ok
}
