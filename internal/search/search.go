// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search expands a subject into blog-search queries, retrieves
// candidate documents, and fetches full page bodies for a bounded subset.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/insight-engine/internal/htmltext"
	"github.com/pdiddy/insight-engine/internal/httputil"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// Result is one search hit before its body is fetched.
type Result struct {
	Title    string
	Snippet  string
	URL      string
	PostDate string
}

// Provider searches a single external API. Implementations strip markup
// from titles and snippets before returning.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]Result, error)
}

// productTemplates and careerTemplates expand a subject into queries that
// surface experience-based review posts. The career set is broader, adding
// salary and work-life phrasing; the mechanics are identical.
var (
	productTemplates = []string{
		"%s pros cons real use",
		"%s cons review",
		"%s pros review",
	}
	careerTemplates = []string{
		"%s career pros cons reality",
		"%s job downsides experience",
		"%s job advantages review",
		"%s salary work-life balance",
		"%s job experience review",
	}
)

// Templates returns the query templates for a domain. Unknown domains get
// the product set.
func Templates(domain types.Domain) []string {
	if domain == types.DomainCareer {
		return careerTemplates
	}
	return productTemplates
}

// Fetcher retrieves candidate documents for a subject: it runs every query
// template against the provider and fetches full bodies for the first few
// hits of each query, pacing requests to stay under upstream rate limits.
type Fetcher struct {
	provider Provider
	client   *http.Client
	cfg      types.SearchConfig
	logger   *zap.Logger

	queryLimiter *rate.Limiter
	docLimiter   *rate.Limiter
}

// NewFetcher builds a Fetcher, applying config defaults.
func NewFetcher(provider Provider, cfg types.SearchConfig, logger *zap.Logger) *Fetcher {
	if cfg.Display <= 0 {
		cfg.Display = 10
	}
	if cfg.PerQueryFetch <= 0 {
		cfg.PerQueryFetch = 5
	}
	if cfg.MinBodyChars <= 0 {
		cfg.MinBodyChars = 300
	}
	if cfg.FetchDelay <= 0 {
		cfg.FetchDelay = time.Second
	}
	if cfg.QueryDelay <= 0 {
		cfg.QueryDelay = 2 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		provider:     provider,
		client:       httputil.NewClient(cfg.Timeout),
		cfg:          cfg,
		logger:       logger,
		queryLimiter: rate.NewLimiter(rate.Every(cfg.QueryDelay), 1),
		docLimiter:   rate.NewLimiter(rate.Every(cfg.FetchDelay), 1),
	}
}

// Fetch expands subject through the domain's query templates and returns
// the documents whose bodies could be retrieved and passed the minimum
// length filter. Per-document and per-query failures are logged and
// skipped; a fully unreachable provider yields an empty slice, never an
// error. Progress lines are written to w.
func (f *Fetcher) Fetch(ctx context.Context, subject string, domain types.Domain, w io.Writer) []types.Document {
	var docs []types.Document
	seen := make(map[string]bool) // URL → already fetched

	for _, tmpl := range Templates(domain) {
		if err := f.queryLimiter.Wait(ctx); err != nil {
			f.logger.Warn("search cancelled", zap.Error(err))
			return docs
		}

		query := fmt.Sprintf(tmpl, subject)
		fmt.Fprintf(w, "searching: %q\n", query)

		results, err := f.provider.Search(ctx, query, f.cfg)
		if err != nil {
			f.logger.Warn("search query failed",
				zap.String("provider", f.provider.Name()),
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "  %d posts found\n", len(results))

		if len(results) > f.cfg.PerQueryFetch {
			results = results[:f.cfg.PerQueryFetch]
		}

		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true

			if err := f.docLimiter.Wait(ctx); err != nil {
				f.logger.Warn("fetch cancelled", zap.Error(err))
				return docs
			}

			body, err := f.fetchBody(ctx, r.URL)
			if err != nil {
				f.logger.Debug("document fetch failed",
					zap.String("url", r.URL), zap.Error(err))
				continue
			}
			// Rune count, not bytes: multibyte text would otherwise pass
			// the filter at a third of the intended length.
			if chars := len([]rune(body)); chars <= f.cfg.MinBodyChars {
				f.logger.Debug("document too short",
					zap.String("url", r.URL), zap.Int("chars", chars))
				continue
			}

			docs = append(docs, types.Document{
				URL:       r.URL,
				Title:     r.Title,
				Snippet:   r.Snippet,
				RawBody:   body,
				PostDate:  r.PostDate,
				FetchedAt: time.Now(),
			})
		}
	}

	return docs
}

// fetchBody retrieves one page and strips it to plain text.
func (f *Fetcher) fetchBody(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mobileURL(pageURL), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 1)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d", pageURL, resp.StatusCode)
	}

	text, err := htmltext.ExtractMain(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return text, nil
}

// mobileURL rewrites desktop blog post URLs to the mobile host, which
// serves the post body without the iframe indirection of the desktop page.
// Other URLs pass through unchanged.
func mobileURL(pageURL string) string {
	const desktopHost = "blog.naver.com"
	idx := strings.Index(pageURL, desktopHost+"/")
	if idx < 0 {
		return pageURL
	}

	rest := pageURL[idx+len(desktopHost)+1:]
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 2 {
		return pageURL
	}
	blogID := parts[0]
	postNo := strings.SplitN(parts[1], "?", 2)[0]
	if blogID == "" || postNo == "" {
		return pageURL
	}
	return fmt.Sprintf("https://m.%s/%s/%s", desktopHost, blogID, postNo)
}
