package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/fundscout/models"
)

func main() {
	apiURL := os.Getenv("FUNDSCOUT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	// Optional: the server may run with auth disabled.
	apiKey := os.Getenv("FUNDSCOUT_API_KEY")

	s := server.NewMCPServer(
		"fundscout",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	// A full crawl renders every results page and fetches two pages per
	// campaign, so the client timeout is generous.
	client := &http.Client{Timeout: 30 * time.Minute}
	s.AddTool(crawlTool(), handleCrawl(client, apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func crawlTool() mcp.Tool {
	return mcp.NewTool("crawl_campaigns",
		mcp.WithDescription("Search GoFundMe for the given terms, crawl the result pages and return one record per campaign (title, amounts, tags, country, donation count, ...). The dataset is also saved on the fundscout server."),
		mcp.WithArray("query_terms",
			mcp.Description("Search terms, joined with single spaces (default: the server's configured terms)"),
		),
		mcp.WithNumber("page_limit",
			mcp.Description("Number of result pages to fetch; 0 or absent crawls until a page has no campaigns"),
		),
		mcp.WithString("format",
			mcp.Description("Dataset file format saved on the server: 'csv' (default), 'json' or 'sqlite'"),
			mcp.Enum("csv", "json", "sqlite"),
		),
	)
}

// handleCrawl forwards a tool call to POST /api/v1/crawl.
func handleCrawl(client *http.Client, apiURL, apiKey string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reqBody := models.CrawlRequest{
			QueryTerms: request.GetStringSlice("query_terms", nil),
			PageLimit:  request.GetInt("page_limit", 0),
			Format:     request.GetString("format", ""),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/crawl", reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("crawl request failed: %v", err)), nil
		}

		var crawlResp models.CrawlResponse
		if err := json.Unmarshal(respBody, &crawlResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !crawlResp.Success {
			errMsg := "crawl failed"
			if crawlResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", crawlResp.Error.Code, crawlResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(formatCrawl(&crawlResp)), nil
	}
}

// formatCrawl renders a header followed by the records as indented JSON.
func formatCrawl(resp *models.CrawlResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search: %s\nPages: %d\nCampaigns: %d\nDataset: %s\n\n",
		resp.SearchURL, resp.Pages, len(resp.Records), resp.Dataset)

	records, err := json.MarshalIndent(resp.Records, "", "  ")
	if err != nil {
		fmt.Fprintf(&sb, "records unavailable: %v", err)
		return sb.String()
	}
	sb.Write(records)
	return sb.String()
}

// apiPost sends a POST request to the fundscout API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
