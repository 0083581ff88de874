package ollama_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Sentinel is returned in place of generated text whenever the completion
// endpoint is unreachable, errors, or produces an undecodable body. It is a
// valid (degraded) response, not an error value.
const Sentinel = "Error occurred."

// client implements the provider interface against an Ollama-style
// /api/generate endpoint.
type client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *log.Logger
}

// request represents a generate request to the Ollama API
type request struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// response represents a generate response from the Ollama API
type response struct {
	Response string `json:"response"`
}

// NewClient creates a new Ollama client with a bounded request timeout.
func NewClient(baseURL, model string, timeout time.Duration) *client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.New(log.Writer(), "[OLLAMA] ", log.LstdFlags),
	}
}

// Complete sends the formatted prompt and returns the generated text, or the
// sentinel string on any failure. Callers never receive an error.
func (c *client) Complete(ctx context.Context, prompt string) string {
	body, err := json.Marshal(request{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		c.logger.Printf("marshal request: %v", err)
		return Sentinel
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Printf("create request: %v", err)
		return Sentinel
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("completion request failed: %v", err)
		return Sentinel
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("completion endpoint returned status %d", resp.StatusCode)
		return Sentinel
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Printf("decode response: %v", err)
		return Sentinel
	}
	return out.Response
}
