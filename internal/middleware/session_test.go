package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/NebularEclipse/SE/internal/models"
)

type resolverMock struct {
	identities map[string]*models.Identity
	err        error
}

func (m *resolverMock) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.identities[token], nil
}

func identityProbe(resolver *resolverMock) (*gin.Engine, *models.Identity) {
	gin.SetMode(gin.TestMode)
	captured := &models.Identity{}
	r := gin.New()
	r.Use(Identity(resolver, "orca_session"))
	r.GET("/probe", func(c *gin.Context) {
		if identity := CurrentIdentity(c); identity != nil {
			*captured = *identity
		}
		c.Status(http.StatusOK)
	})
	return r, captured
}

func TestIdentityResolvesCookie(t *testing.T) {
	resolver := &resolverMock{identities: map[string]*models.Identity{
		"token-1": {ID: "s1", Role: models.RoleStudent, Name: "Amy"},
	}}
	r, captured := identityProbe(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "orca_session", Value: "token-1"})
	r.ServeHTTP(w, req)

	assert.Equal(t, "s1", captured.ID)
	assert.Equal(t, models.RoleStudent, captured.Role)
}

func TestIdentityAnonymousWithoutCookie(t *testing.T) {
	r, captured := identityProbe(&resolverMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, captured.ID)
}

func TestIdentityAnonymousOnResolverError(t *testing.T) {
	r, captured := identityProbe(&resolverMock{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "orca_session", Value: "token-1"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, captured.ID)
}
