package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/NebularEclipse/SE/internal/middleware"
	"github.com/NebularEclipse/SE/internal/models"
)

func identityFromContext(c *gin.Context) *models.Identity {
	return middleware.CurrentIdentity(c)
}
