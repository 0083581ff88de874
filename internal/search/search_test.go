package search

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeCompleter struct {
	replies []string
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	if len(f.replies) == 0 {
		return ""
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply
}

type fakeFetcher struct {
	body string
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

type fakeExtractor struct {
	results []Result
	err     error
}

func (f fakeExtractor) Extract(io.Reader) ([]Result, error) { return f.results, f.err }

func TestSearch_Success(t *testing.T) {
	t.Parallel()
	llm := &fakeCompleter{replies: []string{"user wants weather", "a sunny summary"}}
	results := []Result{{Title: "T", URL: "https://example.com", Snippet: "S"}}
	svc := NewService(llm, fakeFetcher{body: "<html/>"}, fakeExtractor{results: results})

	resp, err := svc.Search(context.Background(), "weather")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Intent != "user wants weather" {
		t.Fatalf("intent = %q", resp.Intent)
	}
	if resp.Analysis != "a sunny summary" {
		t.Fatalf("analysis = %q", resp.Analysis)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "T" {
		t.Fatalf("results = %+v", resp.Results)
	}
	if len(llm.prompts) != 2 {
		t.Fatalf("completion called %d times, want 2", len(llm.prompts))
	}
	if !strings.Contains(llm.prompts[0], `"weather"`) {
		t.Fatalf("intent prompt missing query: %q", llm.prompts[0])
	}
	if !strings.Contains(llm.prompts[1], "https://example.com") {
		t.Fatalf("summary prompt missing serialized results: %q", llm.prompts[1])
	}
}

func TestSearch_NoResults(t *testing.T) {
	t.Parallel()
	llm := &fakeCompleter{replies: []string{"intent"}}
	svc := NewService(llm, fakeFetcher{body: "<html/>"}, fakeExtractor{})

	_, err := svc.Search(context.Background(), "obscure query")
	if err == nil {
		t.Fatal("Search() should fail when zero results were extracted")
	}
	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if searchErr.Message != "No search results found" {
		t.Fatalf("message = %q", searchErr.Message)
	}
	if len(llm.prompts) != 1 {
		t.Fatal("summary completion must not run when there are no results")
	}
}

func TestSearch_FetchFailureIsNormalized(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection reset")
	svc := NewService(&fakeCompleter{}, fakeFetcher{err: cause}, fakeExtractor{})

	_, err := svc.Search(context.Background(), "q")
	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if searchErr.Message != UserMessage {
		t.Fatalf("user message = %q, want the fixed user-safe text", searchErr.Message)
	}
	if !errors.Is(err, cause) {
		t.Fatal("internal cause should be wrapped for logging, not dropped")
	}
	if strings.Contains(searchErr.Message, "connection reset") {
		t.Fatal("user-facing message must not leak internals")
	}
}

func TestSearch_ExtractFailureIsNormalized(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeCompleter{}, fakeFetcher{body: "<html/>"}, fakeExtractor{err: errors.New("bad html")})

	_, err := svc.Search(context.Background(), "q")
	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if searchErr.Message != UserMessage {
		t.Fatalf("user message = %q", searchErr.Message)
	}
}

func TestSearch_SentinelIntentIsNotFatal(t *testing.T) {
	t.Parallel()
	llm := &fakeCompleter{replies: []string{"Error occurred.", "summary"}}
	svc := NewService(llm, fakeFetcher{body: "<html/>"}, fakeExtractor{results: []Result{{Title: "T", URL: "u"}}})

	resp, err := svc.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Intent != "Error occurred." {
		t.Fatalf("intent = %q, want the sentinel carried through", resp.Intent)
	}
}
