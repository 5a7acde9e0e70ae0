package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogkit/api/handlers"
	"blogkit/config"
	"blogkit/content"
)

// requestID tags every request with a unique id, echoed in the response
// header and attached to the access log entry.
func requestID() gin.HandlerFunc {
	log := config.Logger()
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)

		start := time.Now()
		c.Next()

		log.Info("request completed",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

func New(svc *content.Service, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/rss.xml", handlers.RSSHandler(svc, cfg, config.Logger()))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/posts", handlers.ListPostsHandler(svc, cfg))
		api.GET("/posts/recent", handlers.RecentPostsHandler(svc, cfg))
		api.GET("/post/:year/:month/:slug", handlers.GetPostHandler(svc, cfg))
		api.GET("/categories", handlers.CategoriesHandler(svc, cfg))
		api.GET("/tags", handlers.TagsHandler(svc, cfg))
		api.GET("/category/:slug", handlers.CategoryHandler(svc, cfg))
		api.GET("/tag/:slug", handlers.TagHandler(svc))
	}

	return r
}
