package extract

import (
	"context"
	"errors"
	"log/slog"

	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/engine"
	"github.com/use-agent/fundscout/models"
)

// FieldExtractor builds one record per campaign from two sequential fetches:
// the campaign page, parsed as a DOM, and its donations page, scanned as text.
type FieldExtractor struct {
	engine   engine.Engine
	describe DescribeFunc
}

// NewFieldExtractor creates a FieldExtractor fetching through e.
// siteOrigin resolves relative links when descriptions are kept as Markdown.
func NewFieldExtractor(e engine.Engine, cfg config.FieldsConfig, siteOrigin string) *FieldExtractor {
	describe := TextDescription
	if cfg.DescriptionFormat == "markdown" {
		describe = MarkdownDescription(siteOrigin)
	}
	return &FieldExtractor{engine: e, describe: describe}
}

// Extract fetches campaignURL and its donations page and returns the record.
// Missing fields are not errors; failed fetches are.
func (f *FieldExtractor) Extract(ctx context.Context, campaignURL string) (*models.CampaignRecord, error) {
	rec := models.NewCampaignRecord(campaignURL)

	// ── 1. Campaign page ────────────────────────────────────────────
	page, err := f.engine.Fetch(ctx, &engine.FetchRequest{URL: campaignURL})
	if err != nil {
		return nil, fetchError(err, "campaign page fetch failed")
	}
	logFetch("campaign", page)
	if err := ParseCampaign(rec, page.Text(), f.describe); err != nil {
		return nil, models.NewCrawlError(models.ErrCodeFetch, "campaign page unreadable", err)
	}

	// ── 2. Donations page ───────────────────────────────────────────
	donations, err := f.engine.Fetch(ctx, &engine.FetchRequest{URL: DonationsURL(campaignURL)})
	if err != nil {
		return nil, fetchError(err, "donations page fetch failed")
	}
	logFetch("donations", donations)
	ParseDonations(rec, donations.Text())

	return rec, nil
}

// logFetch records how a page came back. Error statuses are still parsed;
// a truncated body may hide the page's last matches.
func logFetch(kind string, res *engine.FetchResult) {
	if res.Truncated {
		slog.Warn("page body truncated, later fields may be missed",
			"page", kind, "url", res.FinalURL, "engine", res.EngineName)
	}
	if res.StatusCode >= 400 {
		slog.Warn("page returned error status, parsing anyway",
			"page", kind, "url", res.FinalURL, "status", res.StatusCode)
		return
	}
	slog.Debug("page fetched",
		"page", kind, "url", res.FinalURL, "status", res.StatusCode, "engine", res.EngineName)
}

// fetchError wraps raw fetch errors into typed CrawlErrors.
func fetchError(err error, msg string) *models.CrawlError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCrawlError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCrawlError(models.ErrCodeTimeout, "fetch canceled", err)
	default:
		return models.NewCrawlError(models.ErrCodeFetch, msg, err)
	}
}
