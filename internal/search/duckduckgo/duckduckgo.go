package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/parkourer10/yapper/internal/search"
)

// DefaultBaseURL serves the lightweight HTML results page, which is the only
// DuckDuckGo surface that parses without JavaScript.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

// NoDescription fills in for results whose container carries no snippet.
const NoDescription = "No description available"

// Client fetches the HTML results page. The browser-like headers are
// required: the engine serves a stripped page to unrecognized clients.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

func (c *Client) Fetch(ctx context.Context, query string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(query)), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://duckduckgo.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch results page: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("results page returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Extractor parses the .result containers of the HTML results page. Only the
// first Max containers in document order are considered; containers missing a
// title or URL are skipped without being replaced.
type Extractor struct {
	Max int
}

func (e Extractor) Extract(r io.Reader) ([]search.Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	max := e.Max
	if max <= 0 {
		max = 5
	}

	var results []search.Result
	doc.Find(".result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= max {
			return false
		}
		title := strings.TrimSpace(sel.Find(".result__title").Text())
		href, _ := sel.Find(".result__url").Attr("href")
		href = strings.TrimSpace(href)
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())

		if title != "" && href != "" {
			if snippet == "" {
				snippet = NoDescription
			}
			results = append(results, search.Result{Title: title, URL: href, Snippet: snippet})
		}
		return true
	})
	return results, nil
}
