package api

import (
	"net/http"
	"time"

	"github.com/emlips/nc-news/internal/config"
	"github.com/emlips/nc-news/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware. The normalizer runs innermost so the request log sees the
	// status it writes.
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.HTTP.AllowedOrigins))
	if cfg.HTTP.RateLimitPerMinute > 0 {
		router.Use(newRateLimiter(cfg.HTTP.RateLimitPerMinute).middleware())
	}
	router.Use(errorMiddleware(log))

	// Handlers
	articles := NewArticleHandler(services)
	comments := NewCommentHandler(services)
	catalog := NewCatalogHandler(services)

	// Health check
	router.GET("/health", catalog.Health)

	api := router.Group("/api")
	{
		api.GET("", catalog.Endpoints)
		api.GET("/topics", catalog.ListTopics)
		api.GET("/users", catalog.ListUsers)
		api.GET("/users/:username", catalog.GetUser)

		api.GET("/articles", articles.List)
		api.POST("/articles", articles.Create)
		api.GET("/articles/:article_id", articles.Get)
		api.PATCH("/articles/:article_id", articles.Vote)
		api.DELETE("/articles/:article_id", articles.Delete)

		api.GET("/articles/:article_id/comments", comments.ListByArticle)
		api.POST("/articles/:article_id/comments", comments.Create)
		api.PATCH("/comments/:comment_id", comments.Vote)
		api.DELETE("/comments/:comment_id", comments.Delete)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "path not found"})
	})

	return router
}

// corsMiddleware allows every origin when the list is just "*"
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}

	return cors.New(corsCfg)
}
