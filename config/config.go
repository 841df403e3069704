package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Crawl   CrawlConfig
	Browser BrowserConfig
	Fetch   FetchConfig
	Fields  FieldsConfig
	Output  OutputConfig
	Server  ServerConfig
	Auth    AuthConfig
	Webhook WebhookConfig
	Log     LogConfig
}

// CrawlConfig describes one search run. It is built once at the boundary
// (env, CLI flags or an API request) and passed down by value.
type CrawlConfig struct {
	// QueryTerms are joined with single spaces into the search string.
	QueryTerms []string // default: ["Venezuela", "Covid"]

	// PageLimit is the number of result pages to fetch. Zero means unset.
	PageLimit int

	// SiteOrigin is prefixed to every discovered campaign link.
	SiteOrigin string // default: "https://www.gofundme.com"

	// SearchPrefix is the search endpoint the query string is appended to.
	SearchPrefix string // default: "https://www.gofundme.com/s?q="
}

// Query returns the search string the URL builder and file name use.
func (c CrawlConfig) Query() string {
	return strings.Join(c.QueryTerms, " ")
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL for all browser traffic.
	Proxy string

	// ImplicitWait is the longest time a render waits for result cards.
	ImplicitWait time.Duration // default: 30s

	// NavigationTimeout bounds page.Navigate alone.
	NavigationTimeout time.Duration // default: 60s

	// Stealth injects the go-rod/stealth evasions before navigation.
	Stealth bool // default: false

	// BlockedResourceTypes lists resource types to block.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string
}

// FetchConfig controls the non-rendering HTTP client used on campaign pages.
type FetchConfig struct {
	// Timeout bounds a single campaign or donations page fetch. Zero disables it.
	Timeout time.Duration // default: 0

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 // default: 10 MiB

	// UserAgent is sent with every request.
	UserAgent string
}

// FieldsConfig controls field extraction.
type FieldsConfig struct {
	// DescriptionFormat is "text" (element text) or "markdown".
	DescriptionFormat string // default: "text"
}

// OutputConfig controls dataset persistence.
type OutputConfig struct {
	// Dir is the directory the dataset file is written to.
	Dir string // default: "."

	// Prefix starts every dataset file name.
	Prefix string // default: "GoFundMeData"

	// Format is "csv", "json" or "sqlite".
	Format string // default: "csv"

	// Summary prints a table of the collected rows after the run.
	Summary bool // default: false
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// WebhookConfig controls the end-of-run notification.
type WebhookConfig struct {
	// URL receives crawl.completed / crawl.failed events. Empty disables it.
	URL string

	// Secret signs the payload with HMAC-SHA256 when set.
	Secret string

	// Timeout bounds a single delivery.
	Timeout time.Duration // default: 10s
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// DefaultQueryTerms is used when no terms are given.
var DefaultQueryTerms = []string{"Venezuela", "Covid"}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first if present; variables
// already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Crawl: CrawlConfig{
			QueryTerms:   envTermsOr("FUNDSCOUT_QUERY_TERMS", DefaultQueryTerms),
			PageLimit:    envIntOr("FUNDSCOUT_PAGE_LIMIT", 0),
			SiteOrigin:   envOr("FUNDSCOUT_SITE_ORIGIN", "https://www.gofundme.com"),
			SearchPrefix: envOr("FUNDSCOUT_SEARCH_PREFIX", "https://www.gofundme.com/s?q="),
		},
		Browser: BrowserConfig{
			Headless:          envBoolOr("FUNDSCOUT_HEADLESS", true),
			NoSandbox:         envBoolOr("FUNDSCOUT_NO_SANDBOX", false),
			BrowserBin:        os.Getenv("FUNDSCOUT_BROWSER_BIN"),
			Proxy:             os.Getenv("FUNDSCOUT_PROXY"),
			ImplicitWait:      envDurationOr("FUNDSCOUT_IMPLICIT_WAIT", 30*time.Second),
			NavigationTimeout: envDurationOr("FUNDSCOUT_NAV_TIMEOUT", 60*time.Second),
			Stealth:           envBoolOr("FUNDSCOUT_STEALTH", false),
			BlockedResourceTypes: envSliceOr("FUNDSCOUT_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("FUNDSCOUT_FETCH_TIMEOUT", 0),
			MaxBodyBytes: int64(envIntOr("FUNDSCOUT_FETCH_MAX_BODY", 10<<20)),
			UserAgent: envOr("FUNDSCOUT_USER_AGENT",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),
		},
		Fields: FieldsConfig{
			DescriptionFormat: envOr("FUNDSCOUT_DESCRIPTION_FORMAT", "text"),
		},
		Output: OutputConfig{
			Dir:     envOr("FUNDSCOUT_OUTPUT_DIR", "."),
			Prefix:  envOr("FUNDSCOUT_OUTPUT_PREFIX", "GoFundMeData"),
			Format:  envOr("FUNDSCOUT_OUTPUT_FORMAT", "csv"),
			Summary: envBoolOr("FUNDSCOUT_SUMMARY", false),
		},
		Server: ServerConfig{
			Host: envOr("FUNDSCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("FUNDSCOUT_PORT", 8080),
			Mode: envOr("FUNDSCOUT_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("FUNDSCOUT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("FUNDSCOUT_API_KEYS", nil),
		},
		Webhook: WebhookConfig{
			URL:     os.Getenv("FUNDSCOUT_WEBHOOK_URL"),
			Secret:  os.Getenv("FUNDSCOUT_WEBHOOK_SECRET"),
			Timeout: envDurationOr("FUNDSCOUT_WEBHOOK_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  envOr("FUNDSCOUT_LOG_LEVEL", "info"),
			Format: envOr("FUNDSCOUT_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

// envTermsOr keeps the whole value as one search term so its spacing
// reaches the query string unchanged.
func envTermsOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		return []string{v}
	}
	return fallback
}
