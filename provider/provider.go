package provider

import (
	"context"
	"errors"

	"github.com/parkourer10/yapper/config"
	ollama_provider "github.com/parkourer10/yapper/provider/ollama"
)

// Client represents different completion backends
type Client string

const (
	Ollama Client = "ollama"
)

// Provider is the interface that all completion implementations must satisfy.
// Complete never returns an error: on any transport or endpoint failure it
// returns a fixed sentinel string that callers treat as a degraded response.
type Provider interface {
	Complete(ctx context.Context, prompt string) string
}

// NewProvider creates a completion client based on the provided configuration
func NewProvider(client Client, cfg config.LLMConfig) (Provider, error) {
	switch client {
	case Ollama:
		return ollama_provider.NewClient(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, errors.New("unsupported completion provider")
	}
}
