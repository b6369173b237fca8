// Package intent classifies user messages into one of four intents.
//
// The primary path asks the remote model for a single label; anything
// the model gets wrong — a failed call, an unrecognized label, a missing
// credential — drops to a local keyword fallback. Classification never
// fails: every message maps to a valid intent.
package intent

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eldercare-labs/carebridge/internal/conversation"
	"github.com/eldercare-labs/carebridge/internal/llm"
	"github.com/eldercare-labs/carebridge/internal/persona"
)

const classifierPrompt = `You are an intent classifier for an elder-safety assistant.
Classify the user's message into exactly one of these labels:
fraud_alert (possible scam, fraud, or suspicious contact)
emergency (immediate danger or medical urgency)
support (questions about using the app or service)
general_inquiry (anything else)
Respond with the label only, nothing else.`

// keywordPriority is the fallback test order. general_inquiry is the
// default and has no keyword set.
var keywordPriority = []conversation.Intent{
	conversation.IntentFraudAlert,
	conversation.IntentEmergency,
	conversation.IntentSupport,
}

// Classifier maps free-text messages to intents.
type Classifier struct {
	client llm.Client
	tables *persona.Tables
	tracer trace.Tracer
}

// NewClassifier creates a classifier backed by the given model client
// and keyword tables.
func NewClassifier(client llm.Client, tables *persona.Tables) *Classifier {
	return &Classifier{
		client: client,
		tables: tables,
		tracer: otel.Tracer("carebridge/intent"),
	}
}

// Classify returns the intent for a message. Remote errors and
// unparseable labels are never surfaced; the keyword fallback covers
// them.
func (c *Classifier) Classify(ctx context.Context, message string) conversation.Intent {
	ctx, span := c.tracer.Start(ctx, "intent.classify")
	defer span.End()

	result, degraded := c.classify(ctx, message)
	span.SetAttributes(
		attribute.String("intent", string(result)),
		attribute.Bool("fallback", degraded),
	)
	return result
}

func (c *Classifier) classify(ctx context.Context, message string) (conversation.Intent, bool) {
	label, err := c.client.Complete(ctx, llm.Request{
		System:      classifierPrompt,
		User:        message,
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		if llm.ClassifyError(err) != llm.KindNotConfigured {
			slog.Warn("remote classification failed, using keyword fallback", "error", err)
		}
		return c.keywordIntent(message), true
	}

	if parsed, ok := conversation.ParseIntent(strings.ToLower(strings.TrimSpace(label))); ok {
		return parsed, false
	}
	slog.Warn("remote classifier returned unrecognized label, using keyword fallback", "label", label)
	return c.keywordIntent(message), true
}

// keywordIntent tests the message against the keyword sets in priority
// order: fraud_alert > emergency > support. Matching is a
// case-insensitive substring test.
func (c *Classifier) keywordIntent(message string) conversation.Intent {
	m := strings.ToLower(message)
	for _, in := range keywordPriority {
		if containsAny(m, c.tables.Keywords[string(in)]) {
			return in
		}
	}
	return conversation.IntentGeneralInquiry
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
