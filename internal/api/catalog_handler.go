package api

import (
	"net/http"
	"time"

	"github.com/emlips/nc-news/internal/service"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves topics, users, the endpoint catalog and health
type CatalogHandler struct {
	services *service.Services
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(services *service.Services) *CatalogHandler {
	return &CatalogHandler{services: services}
}

// Endpoints handles GET /api
func (h *CatalogHandler) Endpoints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"endpoints": h.services.Endpoints.Catalog()})
}

// ListTopics handles GET /api/topics
func (h *CatalogHandler) ListTopics(c *gin.Context) {
	topics, err := h.services.Topic.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// ListUsers handles GET /api/users
func (h *CatalogHandler) ListUsers(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser handles GET /api/users/:username
func (h *CatalogHandler) GetUser(c *gin.Context) {
	user, err := h.services.User.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Health handles GET /health
func (h *CatalogHandler) Health(c *gin.Context) {
	if err := h.services.Health.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
