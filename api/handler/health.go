package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/fundscout/models"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// Reports "crawling" while a crawl holds the browser, "idle" otherwise.
func Health(s *Crawls, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "idle"
		if s.Busy() {
			status = "crawling"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: Version,
		})
	}
}
