package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/models"
	"github.com/use-agent/fundscout/runner"
)

// Runner runs one crawl job and persists its dataset.
type Runner interface {
	Run(ctx context.Context, job runner.Job) (*runner.Outcome, error)
}

// Crawls serialises API crawls: the server owns a single browser tab, so
// only one crawl may drive it at a time.
type Crawls struct {
	runner Runner
	crawl  config.CrawlConfig
	output config.OutputConfig

	mu     sync.Mutex
	active atomic.Bool
}

// NewCrawls creates the crawl service. crawl and output supply the
// defaults for fields a request leaves empty.
func NewCrawls(r Runner, crawl config.CrawlConfig, output config.OutputConfig) *Crawls {
	return &Crawls{runner: r, crawl: crawl, output: output}
}

// Busy reports whether a crawl is running.
func (s *Crawls) Busy() bool { return s.active.Load() }

// job resolves req against the configured defaults.
func (s *Crawls) job(req models.CrawlRequest) runner.Job {
	cc := s.crawl
	if len(req.QueryTerms) > 0 {
		cc.QueryTerms = req.QueryTerms
	}
	cc.PageLimit = req.PageLimit

	format := s.output.Format
	if req.Format != "" {
		format = req.Format
	}
	return runner.Job{Crawl: cc, Format: format, Dir: s.output.Dir}
}

// PostCrawl returns a handler for POST /api/v1/crawl.
//
// Orchestration flow:
//  1. Parse & validate request (an empty body means all defaults).
//  2. Wait for the browser, then run the crawl synchronously.
//  3. Respond with the dataset path and the records.
func PostCrawl(s *Crawls) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Parse request ────────────────────────────────────────
		var req models.CrawlRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, models.CrawlResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		job := s.job(req)

		// ── 2. Crawl ────────────────────────────────────────────────
		s.mu.Lock()
		s.active.Store(true)
		out, err := s.runner.Run(c.Request.Context(), job)
		s.active.Store(false)
		s.mu.Unlock()

		if err != nil {
			respondError(c, err)
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		slog.Info("api crawl finished", "query", job.Crawl.Query(), "rows", out.Table.Len())
		c.JSON(http.StatusOK, models.CrawlResponse{
			Success:    true,
			SearchURL:  out.SearchURL,
			Pages:      out.Pages,
			Dataset:    out.Path,
			Records:    out.Table.Objects(),
			DurationMs: out.Duration.Milliseconds(),
		})
	}
}

// respondError maps a CrawlError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error) {
	var crawlErr *models.CrawlError
	if !errors.As(err, &crawlErr) {
		crawlErr = models.NewCrawlError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(crawlErr), models.CrawlResponse{
		Success: false,
		Error:   crawlErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CrawlError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeRender, models.ErrCodeFetch:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeBrowserCrash:
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
