package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/NebularEclipse/SE/internal/models"
)

// ContextIdentityKey is the gin context key storing the resolved identity.
const ContextIdentityKey = "currentIdentity"

type identityResolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// Identity resolves the session cookie into the current identity before any
// guarded handler runs. Every failure mode (no cookie, unknown token,
// vanished record, unrecognized role) leaves the request anonymous.
func Identity(resolver identityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil || identity == nil {
			c.Next()
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the resolved identity, or nil for anonymous.
func CurrentIdentity(c *gin.Context) *models.Identity {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
