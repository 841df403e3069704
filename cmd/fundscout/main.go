package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/crawl"
	"github.com/use-agent/fundscout/dataset"
	"github.com/use-agent/fundscout/engine"
	"github.com/use-agent/fundscout/extract"
	"github.com/use-agent/fundscout/runner"
	"github.com/use-agent/fundscout/scraper"
	"github.com/use-agent/fundscout/webhook"
)

// flags holds the command-line overrides applied on top of config.Load.
type flags struct {
	queryTerms []string
	pageLimit  int
	format     string
	outDir     string
	summary    bool
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&flags{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(f *flags) *cobra.Command {
	root := &cobra.Command{
		Use:   "fundscout [terms...]",
		Short: "fundscout crawls GoFundMe search results into a campaign dataset.",
		Long: "fundscout searches GoFundMe for the given terms, follows every result page\n" +
			"until one has no campaigns (or the page limit is hit), extracts each\n" +
			"campaign's fields and writes them to a single dataset file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			f.apply(cmd, cfg, args)
			initLogger(cfg.Log)
			return runCrawl(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")

	fl := root.Flags()
	fl.StringArrayVarP(&f.queryTerms, "query-terms", "q", nil, "search term, repeatable; terms are joined with spaces (default \"Venezuela Covid\")")
	fl.IntVarP(&f.pageLimit, "page-limit", "p", 0, "number of result pages to fetch (0 crawls until a page has no campaigns)")
	fl.StringVar(&f.format, "format", "", "dataset format: csv, json or sqlite")
	fl.StringVar(&f.outDir, "out-dir", "", "directory the dataset file is written to")
	fl.BoolVar(&f.summary, "summary", false, "print a summary table after saving")

	root.AddCommand(newServeCmd(f))
	return root
}

// apply overlays the flags that were set on cfg. Positional arguments are
// extra search terms, so `fundscout -q Venezuela Covid` reads naturally.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config, args []string) {
	if terms := append(append([]string{}, f.queryTerms...), args...); len(terms) > 0 {
		cfg.Crawl.QueryTerms = terms
	}
	changed := cmd.Flags().Changed
	if changed("page-limit") {
		cfg.Crawl.PageLimit = f.pageLimit
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("out-dir") {
		cfg.Output.Dir = f.outDir
	}
	if changed("summary") {
		cfg.Output.Summary = f.summary
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}

// runCrawl performs one crawl from the command line.
func runCrawl(ctx context.Context, cfg *config.Config) error {
	slog.Info("fundscout starting",
		"query", cfg.Crawl.Query(),
		"pageLimit", cfg.Crawl.PageLimit,
		"format", cfg.Output.Format,
	)

	// ── 1. Launch browser and build the pipeline ────────────────────
	rn, closeFn, err := newRunner(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	// ── 2. Crawl and persist ────────────────────────────────────────
	out, err := rn.Run(ctx, runner.Job{
		Crawl:  cfg.Crawl,
		Format: cfg.Output.Format,
		Dir:    cfg.Output.Dir,
	})
	if err != nil {
		slog.Error("crawl failed", "error", err)
		return err
	}

	// ── 3. Optional summary ─────────────────────────────────────────
	if cfg.Output.Summary {
		dataset.RenderSummary(os.Stdout, out.Table)
	}

	slog.Info("fundscout finished", "duration", out.Duration.Round(time.Millisecond).String())
	return nil
}

// newRunner wires renderer, HTTP engine, field extractor, controller and
// webhook into a Runner. The returned func closes the browser.
func newRunner(cfg *config.Config) (*runner.Runner, func(), error) {
	renderer, err := scraper.NewRenderer(cfg.Browser)
	if err != nil {
		slog.Error("failed to launch browser", "error", err)
		return nil, nil, err
	}

	httpEngine := engine.NewHTTPEngine(cfg.Fetch)
	fields := extract.NewFieldExtractor(httpEngine, cfg.Fields, cfg.Crawl.SiteOrigin)
	ctrl := crawl.NewController(renderer, fields)

	return runner.New(ctrl, cfg.Output.Prefix, webhook.New(cfg.Webhook)), renderer.Close, nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
