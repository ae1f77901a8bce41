package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/models"
)

const identityKey = "identity"

// Authenticator turns a bearer token into the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// "Bearer <token>"
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abort(c, apperror.Unauthorized("Access denied. No token provided."))
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// Authorize lets the request through only for the listed roles.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	denied := "Access denied. Required role: " + strings.Join(names, " or ") + "."

	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abort(c, apperror.Unauthorized("Not authenticated."))
			return
		}
		for _, r := range roles {
			if identity.Role == r {
				c.Next()
				return
			}
		}
		abort(c, apperror.Forbidden(denied))
	}
}

func IdentityFrom(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok
}

// abort hands err to ErrorHandler and stops the chain.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
