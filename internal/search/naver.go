// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/insight-engine/internal/htmltext"
	"github.com/pdiddy/insight-engine/internal/httputil"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// naverAPIBase is the Naver blog search endpoint. Declared as a var so
// tests can substitute an httptest server.
var naverAPIBase = "https://openapi.naver.com/v1/search/blog"

// NaverProvider queries the Naver blog search OpenAPI.
type NaverProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *NaverProvider) Name() string { return "naver" }

// Search queries the blog search API sorted by similarity and returns hits
// with markup stripped from titles and snippets.
func (p *NaverProvider) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]Result, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("search API credentials not configured")
	}

	display := cfg.Display
	if display <= 0 {
		display = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", fmt.Sprintf("%d", display))
	params.Set("sort", "sim")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, naverAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", cfg.ClientID)
	req.Header.Set("X-Naver-Client-Secret", cfg.ClientSecret)

	client := p.Client
	if client == nil {
		client = httputil.NewClient(cfg.Timeout)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 2)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var feed naverFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	results := make([]Result, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		results = append(results, Result{
			Title:    htmltext.Strip(item.Title),
			Snippet:  htmltext.Strip(item.Description),
			URL:      item.Link,
			PostDate: item.PostDate,
		})
	}
	return results, nil
}

// Naver blog search JSON structures.
type naverFeed struct {
	Items []naverItem `json:"items"`
}

type naverItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PostDate    string `json:"postdate"`
}
