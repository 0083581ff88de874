package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
)

// Result is one extracted search hit. Transient, never persisted.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Response aggregates one search call: the model's one-sentence reading of
// the query, up to five results in source order, and a summary of them.
type Response struct {
	Intent   string   `json:"intent"`
	Results  []Result `json:"results"`
	Analysis string   `json:"analysis"`
}

// UserMessage is the only text shown to users when a search fails; the
// underlying cause is logged, never exposed.
const UserMessage = "Failed to fetch search results. Please try again later."

// Error is the single normalized failure type for the search pipeline.
type Error struct {
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

// ErrNoResults signals that the results page parsed cleanly but contained no
// usable result containers.
var ErrNoResults = &Error{Message: "No search results found"}

// Completer is the slice of the completion provider the service needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// Fetcher retrieves the raw results document for a query from the engine.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (io.ReadCloser, error)
}

// Extractor pulls results out of a fetched document. Kept narrow so that
// upstream page-structure changes touch exactly one implementation.
type Extractor interface {
	Extract(r io.Reader) ([]Result, error)
}

// Service runs the full search pipeline: intent classification, fetch,
// extraction, and result summarization.
type Service struct {
	llm     Completer
	engine  Fetcher
	extract Extractor
	logger  *log.Logger
}

func NewService(llm Completer, engine Fetcher, extractor Extractor) *Service {
	return &Service{
		llm:     llm,
		engine:  engine,
		extract: extractor,
		logger:  log.New(log.Writer(), "[SEARCH] ", log.LstdFlags),
	}
}

// Search runs the pipeline for one query. A sentinel completion for the
// intent step is tolerated; zero extracted results or any fetch/parse
// failure returns a *Error carrying a fixed user-safe message.
func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	intent := s.llm.Complete(ctx, fmt.Sprintf(
		`Analyze this search query and explain in ONE SHORT sentence what the user is looking for: "%s"`, query))

	body, err := s.engine.Fetch(ctx, query)
	if err != nil {
		s.logger.Printf("fetch %q: %v", query, err)
		return nil, &Error{Message: UserMessage, cause: err}
	}
	defer body.Close()

	results, err := s.extract.Extract(body)
	if err != nil {
		s.logger.Printf("extract %q: %v", query, err)
		return nil, &Error{Message: UserMessage, cause: err}
	}
	if len(results) == 0 {
		s.logger.Printf("no results for %q", query)
		return nil, ErrNoResults
	}

	serialized, _ := json.Marshal(results)
	analysis := s.llm.Complete(ctx, fmt.Sprintf(
		`Based on these search results, provide a brief and focused summary (under 900 characters) of the key information found: %s`, serialized))

	return &Response{Intent: intent, Results: results, Analysis: analysis}, nil
}
