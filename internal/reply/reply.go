// Package reply generates the assistant's text response for a turn.
//
// The generator builds a prompt from the persona tables and the session
// transcript, then asks the remote model. Every failure — missing
// credential, rate limit, network, anything — degrades to a canned reply
// from the persona tables with a short human-readable note appended. The
// note is informational only; nothing parses it. Generation never fails
// and never returns an empty string.
package reply

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eldercare-labs/carebridge/internal/conversation"
	"github.com/eldercare-labs/carebridge/internal/llm"
	"github.com/eldercare-labs/carebridge/internal/persona"
)

// suffixes distinguishes the degradation cause in the appended note.
var suffixes = map[llm.ErrorKind]string{
	llm.KindNotConfigured: "(The assistant service isn't set up yet, so this is a saved answer.)",
	llm.KindRateLimited:   "(The assistant is very busy right now, so this is a saved answer. Please try again in a minute.)",
	llm.KindNetwork:       "(I couldn't reach the assistant service, so this is a saved answer.)",
	llm.KindUnknown:       "(Something went wrong reaching the assistant service, so this is a saved answer.)",
}

// Options bound the remote completion.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Generator produces reply text for conversation turns.
type Generator struct {
	client llm.Client
	tables *persona.Tables
	opts   Options
	tracer trace.Tracer
}

// NewGenerator creates a generator backed by the given model client and
// persona tables.
func NewGenerator(client llm.Client, tables *persona.Tables, opts Options) *Generator {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 300
	}
	return &Generator{
		client: client,
		tables: tables,
		opts:   opts,
		tracer: otel.Tracer("carebridge/reply"),
	}
}

// Generate returns the reply text for a message within a session,
// generated under the given intent. The second return is true when the
// reply came from the local fallback table.
func (g *Generator) Generate(ctx context.Context, message string, session *conversation.Session, intent conversation.Intent) (string, bool) {
	ctx, span := g.tracer.Start(ctx, "reply.generate")
	defer span.End()

	text, err := g.client.Complete(ctx, llm.Request{
		System:      g.systemPrompt(session, intent),
		History:     historyMessages(session.Transcript),
		User:        message,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("model returned an empty reply")
	}
	if err != nil {
		kind := llm.ClassifyError(err)
		if kind != llm.KindNotConfigured {
			slog.Warn("remote generation failed, using canned reply", "error", err)
		}
		span.SetAttributes(attribute.Bool("fallback", true))
		return g.fallback(session.UserType, intent, kind), true
	}

	span.SetAttributes(attribute.Bool("fallback", false), attribute.Int("reply_length", len(text)))
	return text, false
}

// systemPrompt selects the template for (userType, intent) and appends
// the elder profile context when present.
func (g *Generator) systemPrompt(session *conversation.Session, intent conversation.Intent) string {
	prompt := g.tables.SystemPrompt(session.UserType, intent)
	if ec := renderElderContext(session.Elder); ec != "" {
		prompt = prompt + "\n" + ec
	}
	return prompt
}

// fallback looks up the canned reply and appends the diagnostic note.
func (g *Generator) fallback(ut conversation.UserType, intent conversation.Intent, kind llm.ErrorKind) string {
	return g.tables.FallbackReply(ut, intent) + "\n\n" + suffixes[kind]
}

// historyMessages converts the transcript into prompt messages,
// timestamps stripped, order preserved.
func historyMessages(transcript []conversation.Turn) []llm.Message {
	msgs := make([]llm.Message, 0, len(transcript))
	for _, t := range transcript {
		msgs = append(msgs, llm.Message{Role: string(t.Role), Content: t.Content})
	}
	return msgs
}

// renderElderContext formats the elder profile for the system prompt.
// Preference keys are sorted so prompt construction is deterministic.
func renderElderContext(e *conversation.ElderContext) string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Context about the elder:")
	if e.Name != "" {
		sb.WriteString(" name " + e.Name + ".")
	}
	if e.Age > 0 {
		fmt.Fprintf(&sb, " age %d.", e.Age)
	}
	if len(e.Preferences) > 0 {
		keys := make([]string, 0, len(e.Preferences))
		for k := range e.Preferences {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" Preferences:")
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s: %s;", k, e.Preferences[k])
		}
	}
	if sb.Len() == len("Context about the elder:") {
		return ""
	}
	return sb.String()
}
