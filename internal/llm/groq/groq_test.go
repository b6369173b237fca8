package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eldercare-labs/carebridge/internal/config"
	"github.com/eldercare-labs/carebridge/internal/llm"
)

func TestCompleteWithoutKey(t *testing.T) {
	c := New(config.GroqConfig{Model: "llama-3.3-70b-versatile"})
	_, err := c.Complete(context.Background(), llm.Request{User: "hello"})
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Errorf("Complete() error = %v, want ErrNotConfigured", err)
	}
}

func TestComplete(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"stay calm, do not share the code"}}]}`))
	}))
	defer srv.Close()

	c := New(config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "llama-3.3-70b-versatile",
	})

	text, err := c.Complete(context.Background(), llm.Request{
		System:    "You help elders.",
		History:   []llm.Message{{Role: "user", Content: "earlier"}},
		User:      "is this a scam?",
		MaxTokens: 300,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if text != "stay calm, do not share the code" {
		t.Errorf("Complete() = %q", text)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
	if gotBody.Model != "llama-3.3-70b-versatile" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if gotBody.MaxTokens != 300 {
		t.Errorf("max_tokens = %d", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 3 {
		t.Fatalf("message count = %d, want 3", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" || gotBody.Messages[0].Content != "You help elders." {
		t.Errorf("messages[0] = %+v", gotBody.Messages[0])
	}
	if gotBody.Messages[1].Role != "user" || gotBody.Messages[1].Content != "earlier" {
		t.Errorf("messages[1] = %+v", gotBody.Messages[1])
	}
	if gotBody.Messages[2].Role != "user" || gotBody.Messages[2].Content != "is this a scam?" {
		t.Errorf("messages[2] = %+v", gotBody.Messages[2])
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(config.GroqConfig{APIKey: "test-key", BaseURL: srv.URL, Model: "m"})
	if _, err := c.Complete(context.Background(), llm.Request{User: "hi"}); err == nil {
		t.Error("Complete() with no choices should error")
	}
}
