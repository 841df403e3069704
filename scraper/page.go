package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/use-agent/fundscout/extract"
	"github.com/use-agent/fundscout/models"
)

// Render loads url in the rendering tab and returns the document HTML.
//
// Lifecycle:
//
//  1. Navigate        – bounded by the navigation timeout
//  2. Wait load       – the window load event
//  3. Implicit wait   – up to ImplicitWait for the first result card
//  4. Extract         – page.HTML()
//
// A page whose result cards never appear is not an error: the implicit wait
// gives up quietly and whatever DOM exists is returned, so the caller sees
// a page without links.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	p := r.page.Context(ctx)

	// ── 1-2. Navigate and wait for load ─────────────────────────────
	navCtx, cancelNav := withTimeout(ctx, r.cfg.NavigationTimeout)
	defer cancelNav()
	nav := r.page.Context(navCtx)
	if err := nav.Navigate(url); err != nil {
		return "", categorizeError(err, "navigation to results page failed")
	}
	if err := nav.WaitLoad(); err != nil {
		return "", categorizeError(err, "results page did not finish loading")
	}

	// ── 3. Implicit wait for result cards ───────────────────────────
	if r.cfg.ImplicitWait > 0 {
		waitCtx, cancelWait := context.WithTimeout(ctx, r.cfg.ImplicitWait)
		_, waitErr := r.page.Context(waitCtx).Element(extract.CardContainerSelector)
		cancelWait()
		if waitErr != nil {
			if ctx.Err() != nil {
				return "", categorizeError(ctx.Err(), "render canceled")
			}
			slog.Debug("no result cards appeared within implicit wait",
				"url", url, "wait", r.cfg.ImplicitWait, "error", waitErr)
		}
	}

	// ── 4. Extract rendered HTML ────────────────────────────────────
	html, err := p.HTML()
	if err != nil {
		return "", categorizeError(err, "failed to extract page HTML")
	}
	return html, nil
}

// withTimeout bounds ctx by d; a non-positive d leaves it unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// categorizeError wraps raw errors into typed CrawlErrors.
func categorizeError(err error, msg string) *models.CrawlError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCrawlError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCrawlError(models.ErrCodeTimeout, "render canceled", err)
	default:
		return models.NewCrawlError(models.ErrCodeRender, msg, err)
	}
}
