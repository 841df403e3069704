package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/crawl"
)

func parsed(t *testing.T, argv ...string) (*config.Config, []string) {
	t.Helper()

	f := &flags{}
	root := newRootCmd(f)
	require.NoError(t, root.ParseFlags(argv))

	cfg := &config.Config{
		Crawl:  config.CrawlConfig{QueryTerms: config.DefaultQueryTerms, PageLimit: 7},
		Output: config.OutputConfig{Dir: ".", Format: "csv"},
		Log:    config.LogConfig{Level: "info"},
	}
	args := root.Flags().Args()
	f.apply(root, cfg, args)
	return cfg, args
}

func TestFlags_DefaultsKept(t *testing.T) {
	cfg, _ := parsed(t)

	assert.Equal(t, "Venezuela Covid", cfg.Crawl.Query())
	assert.Equal(t, 7, cfg.Crawl.PageLimit)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.False(t, cfg.Output.Summary)
}

func TestFlags_QueryTermsWithTrailingWords(t *testing.T) {
	cfg, args := parsed(t, "-q", "Flood", "Relief", "Texas", "-p", "2")

	assert.Equal(t, []string{"Relief", "Texas"}, args)
	assert.Equal(t, "Flood Relief Texas", cfg.Crawl.Query())
	assert.Equal(t, 2, cfg.Crawl.PageLimit)
}

func TestFlags_Overrides(t *testing.T) {
	cfg, _ := parsed(t, "--format", "sqlite", "--out-dir", "/tmp/x", "--summary", "--log-level", "debug", "-p", "0")

	assert.Equal(t, "sqlite", cfg.Output.Format)
	assert.Equal(t, "/tmp/x", cfg.Output.Dir)
	assert.True(t, cfg.Output.Summary)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Zero(t, cfg.Crawl.PageLimit)
}

func TestRootCmd_HasServe(t *testing.T) {
	root := newRootCmd(&flags{})

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
}

func TestFlags_QueryTermsKeepCommasAndSpacing(t *testing.T) {
	cfg, _ := parsed(t, "-q", "help,me now", "-q", "a  b")

	assert.Equal(t, []string{"help,me now", "a  b"}, cfg.Crawl.QueryTerms)
	assert.Equal(t, "help,me now a  b", cfg.Crawl.Query())
	assert.Equal(t, "https://www.gofundme.com/s?q=help,me+now+a++b",
		crawl.SearchURL("https://www.gofundme.com/s?q=", cfg.Crawl.Query()))
}
