package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func resultNode(title, href, snippet string) string {
	return fmt.Sprintf(`<div class="result">
		<a class="result__title">%s</a>
		<a class="result__url" href="%s">%s</a>
		<div class="result__snippet">%s</div>
	</div>`, title, href, href, snippet)
}

func TestExtract_TruncatesToMax(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 7; i++ {
		b.WriteString(resultNode(fmt.Sprintf("Title %d", i), fmt.Sprintf("https://example.com/%d", i), "snip"))
	}
	b.WriteString("</body></html>")

	results, err := Extractor{Max: 5}.Extract(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, r := range results {
		if r.Title != fmt.Sprintf("Title %d", i) {
			t.Fatalf("result %d out of document order: %+v", i, r)
		}
	}
}

func TestExtract_SnippetFallback(t *testing.T) {
	t.Parallel()
	html := "<html><body>" + resultNode("A title", "https://example.com", "") + "</body></html>"
	results, err := Extractor{Max: 5}.Extract(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Snippet != NoDescription {
		t.Fatalf("snippet = %q, want fallback text", results[0].Snippet)
	}
}

func TestExtract_SkipsIncompleteContainers(t *testing.T) {
	t.Parallel()
	html := `<html><body>
		<div class="result"><div class="result__snippet">no title or url</div></div>
		` + resultNode("Kept", "https://example.com/kept", "desc") + `
	</body></html>`
	results, err := Extractor{Max: 5}.Extract(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(results) != 1 || results[0].Title != "Kept" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestExtract_EmptyPage(t *testing.T) {
	t.Parallel()
	results, err := Extractor{Max: 5}.Extract(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results from empty page, want 0", len(results))
	}
}

func TestFetch_SendsBrowserHeadersAndQuery(t *testing.T) {
	t.Parallel()
	var gotQuery, gotUA, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	body, err := c.Fetch(context.Background(), "weather in tokyo")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	_, _ = io.ReadAll(body)
	body.Close()

	if gotQuery != "weather in tokyo" {
		t.Fatalf("query = %q", gotQuery)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Fatalf("User-Agent = %q, want a browser-like value", gotUA)
	}
	if gotReferer != "https://duckduckgo.com/" {
		t.Fatalf("Referer = %q", gotReferer)
	}
}

func TestFetch_ErrorOnBadStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Fetch(context.Background(), "q"); err == nil {
		t.Fatal("Fetch() should fail on non-2xx status")
	}
}
