package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NebularEclipse/SE/internal/models"
)

func newGuardedRouter(guard gin.HandlerFunc, identity *models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if identity != nil {
			c.Set(ContextIdentityKey, identity)
		}
	})
	r.GET("/protected", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAuthenticatedRedirectsAnonymous(t *testing.T) {
	r := newGuardedRouter(RequireAuthenticated("/auth/login"), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestRequireAuthenticatedPassesSignedIn(t *testing.T) {
	identity := &models.Identity{ID: "s1", Role: models.RoleStudent}
	r := newGuardedRouter(RequireAuthenticated("/auth/login"), identity)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRedirectsAnonymous(t *testing.T) {
	r := newGuardedRouter(RequireRole(models.RoleAdmin, "/auth/login"), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	identity := &models.Identity{ID: "s1", Role: models.RoleStudent}
	r := newGuardedRouter(RequireRole(models.RoleAdmin, "/auth/login"), identity)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolePassesMatchingRole(t *testing.T) {
	identity := &models.Identity{ID: "a1", Role: models.RoleAdmin}
	r := newGuardedRouter(RequireRole(models.RoleAdmin, "/auth/login"), identity)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
