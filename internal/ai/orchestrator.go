package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/logger"
)

// Source tells the caller whether a completion came from the model or from
// the task's hardcoded fallback.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Completion is the outcome of one generation. Value is always usable;
// Err carries the degradation cause when Source is SourceFallback.
type Completion[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Degraded reports whether the completion fell back.
func (c Completion[T]) Degraded() bool {
	return c.Source == SourceFallback
}

// Task configures one generation endpoint: its prompt framing, sampling
// parameters, fallback content and per-field defaulting.
type Task[T any] struct {
	Name        string
	System      string
	Temperature float32
	MaxTokens   int
	Fallback    func() T
	Normalize   func(*T)
}

var errNoCredentials = errors.New("completion API key not configured")

// Generate performs a single completion attempt for the task. Missing
// credentials, transport errors, timeouts, empty content and unparseable
// JSON all degrade to the fallback; the cause is logged and recorded on
// the result, never returned as a hard failure.
func Generate[T any](ctx context.Context, c *Client, task Task[T], prompt string) Completion[T] {
	if c.completer == nil {
		return fallback(task, errNoCredentials)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.completer.Complete(ctx, completionRequest{
		System:      task.System,
		Prompt:      prompt,
		Temperature: task.Temperature,
		MaxTokens:   task.MaxTokens,
	})
	if err != nil {
		return fallback(task, err)
	}

	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return fallback(task, errors.New("no valid JSON found in response"))
	}

	// Unmarshal over the fallback value so fields absent from the model's
	// JSON keep their endpoint-specific defaults.
	value := task.Fallback()
	if err := json.Unmarshal([]byte(jsonStr), &value); err != nil {
		return fallback(task, err)
	}
	if task.Normalize != nil {
		task.Normalize(&value)
	}

	return Completion[T]{Value: value, Source: SourceModel}
}

func fallback[T any](task Task[T], cause error) Completion[T] {
	appErr := apperrors.Wrap(cause, apperrors.ErrorTypeExternal, "COMPLETION_API", "completion degraded to fallback").
		WithContext("task", task.Name)
	logger.Warn("Completion degraded to fallback", appErr.LogFields()...)

	value := task.Fallback()
	if task.Normalize != nil {
		task.Normalize(&value)
	}
	return Completion[T]{Value: value, Source: SourceFallback, Err: appErr}
}

// extractJSON pulls a JSON object out of a completion that may be wrapped
// in code fences or surrounding prose.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
