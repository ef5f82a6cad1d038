// Package ai is the orchestrator between domain payloads and the hosted
// completion service. Every generation is a single attempt with a
// caller-scoped timeout; any failure degrades to the task's fallback
// content, so callers always receive a usable value.
package ai

import (
	"context"
	"time"

	"github.com/pulseapp/pulse-backend/internal/config"
)

// completionRequest is the provider-neutral shape of one generation call.
type completionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// completer is one configured backend of the completion service.
type completer interface {
	Complete(ctx context.Context, req completionRequest) (string, error)
}

// Client talks to the configured completion provider. A Client with no
// usable credentials is still valid: every call degrades to fallback.
type Client struct {
	completer completer
	timeout   time.Duration
}

// New builds a Client for the configured provider. The API key may be
// empty; generation then always returns fallback content.
func New(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	c := &Client{timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}

	if cfg.APIKey == "" {
		return c, nil
	}

	switch cfg.Provider {
	case "gemini":
		model := cfg.Model
		if model == "" {
			model = "gemini-1.5-flash"
		}
		gc, err := newGeminiCompleter(ctx, cfg.APIKey, model)
		if err != nil {
			return nil, err
		}
		c.completer = gc
	default:
		model := cfg.Model
		if model == "" {
			model = "gpt-4o"
		}
		c.completer = newOpenAICompleter(cfg.APIKey, model, "")
	}

	return c, nil
}

// newWithCompleter wires an explicit backend, used by tests and by the
// OpenAI base-URL override.
func newWithCompleter(cmp completer, timeout time.Duration) *Client {
	return &Client{completer: cmp, timeout: timeout}
}

// NewOpenAIForBaseURL builds an OpenAI-backed client against a custom
// endpoint. Tests point this at a local fake server.
func NewOpenAIForBaseURL(apiKey, model, baseURL string, timeout time.Duration) *Client {
	return newWithCompleter(newOpenAICompleter(apiKey, model, baseURL), timeout)
}
