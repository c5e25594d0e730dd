package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/NebularEclipse/SE/internal/models"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
	"github.com/NebularEclipse/SE/pkg/response"
)

// RequireAuthenticated sends anonymous callers to the login entry point.
func RequireAuthenticated(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			response.RedirectToLogin(c, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole redirects anonymous callers to login and rejects authenticated
// callers holding a different role with a forbidden response.
func RequireRole(role models.Role, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			response.RedirectToLogin(c, loginPath)
			c.Abort()
			return
		}
		if identity.Role != role {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
