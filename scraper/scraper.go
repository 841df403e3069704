package scraper

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/models"
	"github.com/ysmood/gson"
)

// Renderer owns one headless browser and a single tab that every results
// page is rendered in. Renders are sequential; it is not safe for
// concurrent use.
type Renderer struct {
	browser *rod.Browser
	page    *rod.Page
	router  *rod.HijackRouter
	cfg     config.BrowserConfig
}

// NewRenderer launches the browser and prepares the rendering tab.
func NewRenderer(cfg config.BrowserConfig) (*Renderer, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to open rendering tab",
			err,
		)
	}

	// Stealth JS only applies to documents loaded after it is installed.
	if cfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	if err := (proto.NetworkSetExtraHTTPHeaders{
		Headers: proto.NetworkHeaders{"Accept-Language": gson.New("en-US,en;q=0.9")},
	}).Call(page); err != nil {
		slog.Warn("extra headers not applied, proceeding with browser defaults",
			"error", err,
		)
	}

	return &Renderer{
		browser: browser,
		page:    page,
		router:  setupHijack(page, cfg.BlockedResourceTypes),
		cfg:     cfg,
	}, nil
}

// Close stops request interception and kills the browser process.
func (r *Renderer) Close() {
	slog.Info("renderer shutting down")
	if r.router != nil {
		_ = r.router.Stop()
	}
	_ = r.page.Close()
	if err := r.browser.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
}
