package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/fundscout/api/handler"
	"github.com/use-agent/fundscout/api/middleware"
	"github.com/use-agent/fundscout/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled)
//
// Health endpoint is intentionally outside auth so monitoring checks always work.
func NewRouter(r handler.Runner, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	crawls := handler.NewCrawls(r, cfg.Crawl, cfg.Output)

	v1 := engine.Group("/api/v1")

	// Health: no auth required.
	v1.GET("/health", handler.Health(crawls, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}

	protected.POST("/crawl", handler.PostCrawl(crawls))

	return engine
}
