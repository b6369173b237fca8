// Package processor implements the conversation turn pipeline.
//
// The processor receives a user message from a transport, classifies its
// intent, generates a reply, optionally synthesizes voice audio, and
// returns the updated transcript with follow-up suggestions. The user
// always gets a usable reply — this is an architectural invariant: only
// an empty message is a hard error, every remote failure degrades into a
// local fallback instead.
package processor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/eldercare-labs/carebridge/internal/conversation"
	"github.com/eldercare-labs/carebridge/internal/intent"
	"github.com/eldercare-labs/carebridge/internal/reply"
	"github.com/eldercare-labs/carebridge/internal/suggest"
	"github.com/eldercare-labs/carebridge/internal/voice"
)

// Request is one conversation turn to process.
type Request struct {
	// Message is the user's text. Required.
	Message string

	// WantsAudio asks for a synthesized voice reply.
	WantsAudio bool

	// Urgency nudges voice synthesis toward emphatic delivery.
	Urgency conversation.Urgency
}

// Processor orchestrates the turn pipeline. It holds no per-session
// state; sessions are owned by their callers.
type Processor struct {
	classifier  *intent.Classifier
	generator   *reply.Generator
	synthesizer voice.Synthesizer // nil if TTS is disabled
	suggestions *suggest.Source

	tracer        trace.Tracer
	turns         metric.Int64Counter
	fallbacks     metric.Int64Counter
	synthFailures metric.Int64Counter
}

// New creates a Processor. A nil synthesizer disables voice output.
func New(classifier *intent.Classifier, generator *reply.Generator, synthesizer voice.Synthesizer, suggestions *suggest.Source) *Processor {
	meter := otel.Meter("carebridge/processor")
	turns, _ := meter.Int64Counter("carebridge.turns",
		metric.WithDescription("Conversation turns processed"))
	fallbacks, _ := meter.Int64Counter("carebridge.reply_fallbacks",
		metric.WithDescription("Turns answered from the canned-reply table"))
	synthFailures, _ := meter.Int64Counter("carebridge.synthesis_failures",
		metric.WithDescription("Voice synthesis attempts that failed"))

	return &Processor{
		classifier:    classifier,
		generator:     generator,
		synthesizer:   synthesizer,
		suggestions:   suggestions,
		tracer:        otel.Tracer("carebridge/processor"),
		turns:         turns,
		fallbacks:     fallbacks,
		synthFailures: synthFailures,
	}
}

// Process runs one message through the full pipeline. The caller's
// session is read but never mutated; the returned result carries the
// extended transcript for the caller to adopt.
func (p *Processor) Process(ctx context.Context, req Request, session *conversation.Session) (*conversation.TurnResult, error) {
	start := time.Now()
	logger := slog.With("user_type", session.UserType)

	if strings.TrimSpace(req.Message) == "" {
		return nil, conversation.ErrEmptyMessage
	}

	ctx, span := p.tracer.Start(ctx, "processor.turn")
	defer span.End()

	// Step 1: Classify intent. Never fails.
	in := p.classifier.Classify(ctx, req.Message)
	logger = logger.With("intent", in)
	logger.Debug("intent classified")

	// Step 2: Generate the reply under the classified intent. Never fails.
	text, degraded := p.generator.Generate(ctx, req.Message, session, in)
	if degraded {
		p.fallbacks.Add(ctx, 1)
	}

	// Step 3: Synthesize voice, best-effort. A failed synthesis never
	// fails or alters the text reply.
	var audio []byte
	if req.WantsAudio && p.synthesizer != nil {
		profile := voice.ProfileFor(in, session.UserType, req.Urgency)
		data, err := p.synthesizer.Synthesize(ctx, text, profile)
		if err != nil {
			p.synthFailures.Add(ctx, 1)
			logger.Warn("voice synthesis failed, continuing without audio", "error", err)
		} else {
			audio = data
		}
	}

	// Step 4: Append both turns to a copy of the transcript.
	transcript := session.Extend(
		conversation.NewUserTurn(req.Message),
		conversation.NewAssistantTurn(text, in, degraded),
	)

	result := &conversation.TurnResult{
		Reply:       text,
		Intent:      in,
		Audio:       audio,
		Transcript:  transcript,
		Suggestions: p.suggestions.For(string(session.UserType), string(in)),
		Degraded:    degraded,
	}

	p.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", string(in))))
	span.SetAttributes(
		attribute.String("intent", string(in)),
		attribute.Bool("degraded", degraded),
		attribute.Bool("audio", len(audio) > 0),
	)
	logger.Info("turn complete",
		"degraded", degraded,
		"audio_bytes", len(audio),
		"duration", time.Since(start))

	return result, nil
}
