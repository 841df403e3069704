package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/crawl"
	"github.com/use-agent/fundscout/dataset"
	"github.com/use-agent/fundscout/models"
	"github.com/use-agent/fundscout/webhook"
)

// Crawler runs one search to completion.
type Crawler interface {
	Run(ctx context.Context, cfg config.CrawlConfig) (*crawl.Result, error)
}

// Job is one crawl-and-persist request, already resolved against config.
type Job struct {
	Crawl  config.CrawlConfig
	Format string
	Dir    string
}

// Outcome describes a persisted run.
type Outcome struct {
	SearchURL string
	Pages     int
	Path      string
	Table     *dataset.Table
	Duration  time.Duration
}

// Runner ties a crawl to dataset persistence and the run notification.
// The CLI and the API server share it.
type Runner struct {
	crawler  Crawler
	prefix   string
	notifier *webhook.Notifier
	now      func() time.Time
}

// New creates a Runner. notifier may be nil.
func New(c Crawler, prefix string, notifier *webhook.Notifier) *Runner {
	return &Runner{crawler: c, prefix: prefix, notifier: notifier, now: time.Now}
}

// Run crawls job, writes the dataset once at the end and notifies the
// webhook. Nothing is written when the crawl fails.
func (r *Runner) Run(ctx context.Context, job Job) (*Outcome, error) {
	start := r.now()
	query := job.Crawl.Query()

	// ── 1. Resolve writer before any network work ──────────────────
	w, err := dataset.NewWriter(job.Format)
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeInvalidInput, err.Error(), err)
	}

	// ── 2. Crawl ────────────────────────────────────────────────────
	res, err := r.crawler.Run(ctx, job.Crawl)
	if err != nil {
		ce := asCrawlError(err)
		r.notifier.Notify(ctx, &webhook.Event{
			Type:  webhook.EventFailed,
			Query: query,
			Data:  map[string]any{"error": ce.ToDetail()},
		})
		return nil, ce
	}

	// ── 3. Aggregate and persist ────────────────────────────────────
	tbl := dataset.Build(res.Records)
	name := dataset.FileName(r.prefix, query, start, job.Crawl.PageLimit, w.Ext())
	path, err := dataset.Save(w, job.Dir, name, tbl)
	if err != nil {
		ce := models.NewCrawlError(models.ErrCodePersist, "dataset could not be written", err)
		r.notifier.Notify(ctx, &webhook.Event{
			Type:  webhook.EventFailed,
			Query: query,
			Data:  map[string]any{"error": ce.ToDetail()},
		})
		return nil, ce
	}

	out := &Outcome{
		SearchURL: res.SearchURL,
		Pages:     res.Pages,
		Path:      path,
		Table:     tbl,
		Duration:  r.now().Sub(start),
	}
	slog.Info("dataset saved",
		"path", path,
		"rows", tbl.Len(),
		"columns", len(tbl.Columns),
		"pages", out.Pages,
	)

	// ── 4. Notify ───────────────────────────────────────────────────
	r.notifier.Notify(ctx, &webhook.Event{
		Type:  webhook.EventCompleted,
		Query: query,
		Data: map[string]any{
			"search_url": out.SearchURL,
			"pages":      out.Pages,
			"records":    tbl.Len(),
			"dataset":    path,
		},
	})

	return out, nil
}

func asCrawlError(err error) *models.CrawlError {
	var ce *models.CrawlError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.NewCrawlError(models.ErrCodeTimeout, "crawl interrupted", err)
	}
	return models.NewCrawlError(models.ErrCodeInternal, err.Error(), err)
}
