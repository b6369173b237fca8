// Package groq implements the llm.Client interface against Groq's
// OpenAI-compatible chat-completion API.
//
// Groq serves the OpenAI wire format at a different base URL, so the
// backend rides on the go-openai client with the endpoint swapped.
package groq

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/eldercare-labs/carebridge/internal/config"
	"github.com/eldercare-labs/carebridge/internal/llm"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Client implements llm.Client using the Groq API.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new Groq client from config. A client built without an
// API key is still usable; every call returns llm.ErrNotConfigured so
// callers degrade to their local fallbacks.
func New(cfg config.GroqConfig) *Client {
	if cfg.APIKey == "" {
		return &Client{model: cfg.Model}
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.BaseURL
	if oc.BaseURL == "" {
		oc.BaseURL = defaultBaseURL
	}

	return &Client{
		api:   openai.NewClientWithConfig(oc),
		model: cfg.Model,
	}
}

// Name returns the backend identifier.
func (c *Client) Name() string { return "groq" }

// Complete performs one chat completion and returns the first choice.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	if c.api == nil {
		return "", llm.ErrNotConfigured
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("groq completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq completion: no choices returned")
	}

	text := resp.Choices[0].Message.Content
	slog.Debug("groq completion", "model", c.model, "reply_length", len(text))
	return text, nil
}

// Close is a no-op for the Groq backend.
func (c *Client) Close() error { return nil }
