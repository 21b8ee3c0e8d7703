package handlers

import (
	"net/http"

	"ideaforge-backend/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig holds what NewRouter wires together
type RouterConfig struct {
	Ideas          *IdeaHandler
	Logger         *zap.Logger
	AllowedOrigins []string
	// GenerateLimiter throttles the model-backed endpoint; nil disables it
	GenerateLimiter *middleware.IPRateLimiter
}

// NewRouter builds the gin engine with all API routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(logger), corsMiddleware(cfg.AllowedOrigins))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	generate := []gin.HandlerFunc{cfg.Ideas.GenerateIdeas}
	if cfg.GenerateLimiter != nil {
		generate = append([]gin.HandlerFunc{middleware.RateLimit(cfg.GenerateLimiter)}, generate...)
	}

	api := r.Group("/api")
	{
		api.GET("/options", cfg.Ideas.GetOptions)

		// Idea endpoints
		api.POST("/ideas/generate", generate...)
		api.GET("/ideas/community", cfg.Ideas.GetCommunityIdeas)
		api.GET("/ideas/:id", cfg.Ideas.GetIdea)
		api.POST("/ideas/:id/votes", cfg.Ideas.VoteOnIdea)
		api.POST("/ideas/:id/comments", cfg.Ideas.CommentOnIdea)

		api.GET("/users/:id/ideas", cfg.Ideas.ListUserIdeas)
		api.GET("/generations/:id/completion", cfg.Ideas.GetCompletion)
	}

	return r
}
