package crawl

import (
	"context"
	"errors"
	"log/slog"

	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/extract"
	"github.com/use-agent/fundscout/models"
)

// Renderer loads a URL in a JavaScript-capable browser and returns the
// rendered document.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// FieldExtractor turns one campaign URL into a record.
type FieldExtractor interface {
	Extract(ctx context.Context, campaignURL string) (*models.CampaignRecord, error)
}

// LinkFunc pulls campaign links out of a rendered results page.
type LinkFunc func(renderedHTML string) ([]string, error)

// Result is the outcome of a completed crawl.
type Result struct {
	SearchURL string
	Pages     int
	Records   []*models.CampaignRecord
}

// Controller drives the pagination loop. Every render and fetch blocks the
// loop; the first error ends the run and discards what was collected.
type Controller struct {
	renderer Renderer
	fields   FieldExtractor
	links    LinkFunc
}

// NewController creates a Controller using the standard link extractor.
func NewController(r Renderer, f FieldExtractor) *Controller {
	return &Controller{renderer: r, fields: f, links: extract.Links}
}

// Run crawls the results of cfg's query page by page until a page has no
// campaign links or the page limit is reached.
func (c *Controller) Run(ctx context.Context, cfg config.CrawlConfig) (*Result, error) {
	searchURL := SearchURL(cfg.SearchPrefix, cfg.Query())
	slog.Info("search started", "url", searchURL, "pageLimit", cfg.PageLimit)

	sess := NewSession(cfg.Query(), cfg.PageLimit)
	state := StateFetching

	var (
		page  int
		links []string
	)

	for state != StateStopped {
		switch state {
		case StateFetching:
			pageURL := PageURL(searchURL, sess.Cursor())
			page = sess.Advance()

			slog.Info("rendering results page", "page", page, "url", pageURL)
			rendered, err := c.renderer.Render(ctx, pageURL)
			if err != nil {
				return nil, renderError(err)
			}

			links, err = c.links(rendered)
			if err != nil {
				return nil, models.NewCrawlError(models.ErrCodeRender, "results page unreadable", err)
			}
			slog.Debug("links found", "page", page, "count", len(links))

		case StateExtracting:
			for _, link := range links {
				campaignURL := cfg.SiteOrigin + link
				slog.Info("campaign", "url", campaignURL)

				rec, err := c.fields.Extract(ctx, campaignURL)
				if err != nil {
					return nil, err
				}
				sess.Append(rec)
			}
		}

		state = Next(state, len(links), page, sess.PageLimit)
	}

	slog.Info("search finished", "pages", sess.Pages(), "records", len(sess.Records()))

	return &Result{
		SearchURL: searchURL,
		Pages:     sess.Pages(),
		Records:   sess.Records(),
	}, nil
}

func renderError(err error) error {
	var ce *models.CrawlError
	if errors.As(err, &ce) {
		return err
	}
	return models.NewCrawlError(models.ErrCodeRender, "results page render failed", err)
}
