package models

// CrawlRequest is the payload for POST /api/v1/crawl.
type CrawlRequest struct {
	// QueryTerms are joined with single spaces into the search string.
	// Default: the configured default terms.
	QueryTerms []string `json:"query_terms,omitempty"`

	// PageLimit stops the crawl after this many result pages.
	// Zero means no limit; the crawl ends on the first page without links.
	PageLimit int `json:"page_limit,omitempty" binding:"omitempty,min=0"`

	// Format selects the dataset writer: "csv", "json" or "sqlite".
	// Default: the configured output format.
	Format string `json:"format,omitempty" binding:"omitempty,oneof=csv json sqlite"`
}

// CrawlResponse is the response for POST /api/v1/crawl.
type CrawlResponse struct {
	Success bool `json:"success"`

	// SearchURL is the first results page that was rendered.
	SearchURL string `json:"search_url,omitempty"`

	// Pages is the number of result pages fetched.
	Pages int `json:"pages"`

	// Dataset is the path of the persisted dataset file.
	Dataset string `json:"dataset,omitempty"`

	// Records holds one object per campaign, containing only the keys
	// that were extracted for it.
	Records []map[string]any `json:"records,omitempty"`

	// DurationMs is the end-to-end crawl time in milliseconds.
	DurationMs int64 `json:"duration_ms"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // "idle" or "crawling"
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
