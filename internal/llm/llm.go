// Package llm contains the client for the hosted LLM behind the assistant
// features.
//
// Two implementations exist: OpenRouter for real calls and Fixture for
// development and tests. Which one is used is decided once at startup, there
// are no inline fallbacks in the request path.
package llm

import (
	"context"
	"errors"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "openai/gpt-3.5-turbo"

// ErrEmptyResponse is returned when the model produced no content.
var ErrEmptyResponse = errors.New("the language model returned an empty response")

// Roles a chat message can have.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"` // system, user or assistant
	Content string `json:"content"`
}

// Options are the per-request generation parameters.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// DefaultOptions returns the generation parameters for assistant chat.
func DefaultOptions() Options {
	return Options{
		Model:       DefaultModel,
		Temperature: 0.7,
		MaxTokens:   300,
		TopP:        0.9,
	}
}

// Client generates a completion for a chat conversation.
type Client interface {
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)
}
