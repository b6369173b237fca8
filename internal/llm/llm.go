// Package llm defines the interface for remote chat-completion backends.
//
// A client takes a system prompt, prior conversation history and a new
// user message, and returns the model's text reply. carebridge ships one
// backend, Groq (OpenAI-compatible API); the interface keeps the seam
// open for others.
package llm

import (
	"context"
	"errors"
	"net"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned by backends constructed without a
// credential. Callers treat it like any other failure and fall back.
var ErrNotConfigured = errors.New("llm backend not configured")

// Message is one prompt-level chat message. Role uses the OpenAI
// convention ("system", "user", "assistant").
type Message struct {
	Role    string
	Content string
}

// Request is a single chat-completion call.
type Request struct {
	// System is the system instruction, sent first.
	System string

	// History is the prior transcript, oldest first, timestamps stripped.
	History []Message

	// User is the new user message, appended last.
	User string

	// MaxTokens bounds the completion length. Zero means backend default.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float32
}

// Client is the interface for chat-completion backends.
type Client interface {
	// Name returns the backend identifier (e.g., "groq").
	Name() string

	// Complete performs one chat completion and returns the first
	// choice's text.
	Complete(ctx context.Context, req Request) (string, error)

	// Close releases any resources held by the backend.
	Close() error
}

// ErrorKind buckets a backend failure for user-facing messaging and
// HTTP status mapping. The pipeline's fallback behavior does not branch
// on the kind beyond choosing the diagnostic suffix text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotConfigured
	KindRateLimited
	KindNetwork
)

// ClassifyError maps a backend error to its ErrorKind.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrNotConfigured) {
		return KindNotConfigured
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return kindFromStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindFromStatus(reqErr.HTTPStatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	return KindUnknown
}

func kindFromStatus(status int) ErrorKind {
	switch status {
	case 401, 403:
		return KindNotConfigured
	case 429:
		return KindRateLimited
	default:
		return KindUnknown
	}
}
