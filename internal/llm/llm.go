// Package llm wraps the language-model backends used for destination extraction.
// Every backend answers a single-turn prompt with the first text segment of its reply.
package llm

import (
	"context"
	"errors"
)

var (
	ErrEmptyResponse      = errors.New("model returned no text content")
	ErrModelNotConfigured = errors.New("model id is not configured")
)

// Prompt is a single-turn request: a system instruction plus one user message.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Model answers a prompt with the first text segment of the model output.
type Model interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}
