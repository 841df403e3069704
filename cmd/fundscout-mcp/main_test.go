package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/fundscout/models"
)

func callCrawl(t *testing.T, srv *httptest.Server, apiKey string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	var req mcp.CallToolRequest
	req.Params.Name = "crawl_campaigns"
	req.Params.Arguments = args

	res, err := handleCrawl(srv.Client(), srv.URL, apiKey)(context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleCrawl_ForwardsArguments(t *testing.T) {
	var got models.CrawlRequest
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(models.CrawlResponse{
			Success:   true,
			SearchURL: "https://www.gofundme.com/s?q=flood+relief",
			Pages:     2,
			Dataset:   "GoFundMeData_flood relief_20210307_2.json",
			Records:   []map[string]any{{"url": "https://www.gofundme.com/f/a", "country": "CA"}},
		})
	}))
	defer srv.Close()

	res := callCrawl(t, srv, "k1", map[string]any{
		"query_terms": []any{"flood", "relief"},
		"page_limit":  float64(2),
		"format":      "json",
	})

	assert.False(t, res.IsError)
	assert.Equal(t, "/api/v1/crawl", gotPath)
	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, models.CrawlRequest{QueryTerms: []string{"flood", "relief"}, PageLimit: 2, Format: "json"}, got)

	text := resultText(t, res)
	assert.Contains(t, text, "Pages: 2")
	assert.Contains(t, text, "Campaigns: 1")
	assert.Contains(t, text, `"country": "CA"`)
}

func TestHandleCrawl_DefaultsAndNoKey(t *testing.T) {
	var got models.CrawlRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(models.CrawlResponse{Success: true})
	}))
	defer srv.Close()

	res := callCrawl(t, srv, "", nil)

	assert.False(t, res.IsError)
	assert.Empty(t, gotKey)
	assert.Equal(t, models.CrawlRequest{}, got)
}

func TestHandleCrawl_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(models.CrawlResponse{
			Error: &models.ErrorDetail{Code: models.ErrCodeRender, Message: "results page render failed"},
		})
	}))
	defer srv.Close()

	res := callCrawl(t, srv, "", map[string]any{})

	assert.True(t, res.IsError)
	assert.Equal(t, "[RENDER_FAILED] results page render failed", resultText(t, res))
}

func TestHandleCrawl_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	res := callCrawl(t, srv, "", nil)

	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "crawl request failed")
}
