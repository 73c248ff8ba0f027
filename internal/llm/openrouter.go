package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter is the Client implementation backed by the OpenRouter API.
type OpenRouter struct {
	client *resty.Client
}

// NewOpenRouter returns a client authenticated with the given API key.
func NewOpenRouter(apiKey string) *OpenRouter {
	client := resty.New().
		SetBaseURL(openRouterBaseURL).
		SetAuthToken(apiKey).
		SetHeader("HTTP-Referer", "https://spendiq.app").
		SetHeader("X-Title", "SpendIQ").
		SetTimeout(30 * time.Second)

	return &OpenRouter{client: client}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	TopP        float64   `json:"top_p,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat implements the Client interface.
func (o *OpenRouter) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	var response chatResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       opts.Model,
			Messages:    messages,
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
			TopP:        opts.TopP,
		}).
		SetResult(&response).
		SetError(&response).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	if resp.IsError() {
		if response.Error != nil {
			return "", fmt.Errorf("openrouter: %s", response.Error.Message)
		}
		return "", fmt.Errorf("openrouter returned HTTP %d", resp.StatusCode())
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return response.Choices[0].Message.Content, nil
}
