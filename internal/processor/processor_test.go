package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eldercare-labs/carebridge/internal/conversation"
	"github.com/eldercare-labs/carebridge/internal/intent"
	"github.com/eldercare-labs/carebridge/internal/llm"
	"github.com/eldercare-labs/carebridge/internal/persona"
	"github.com/eldercare-labs/carebridge/internal/reply"
	"github.com/eldercare-labs/carebridge/internal/suggest"
	"github.com/eldercare-labs/carebridge/internal/voice"
)

// countingClient implements llm.Client, counting calls so tests can
// assert that no remote work happens for rejected input.
type countingClient struct {
	reply string
	err   error
	calls int
}

func (c *countingClient) Name() string { return "fake" }
func (c *countingClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.calls++
	return c.reply, c.err
}
func (c *countingClient) Close() error { return nil }

// fakeSynth implements voice.Synthesizer.
type fakeSynth struct {
	audio []byte
	err   error
	calls int
}

func (s *fakeSynth) Synthesize(ctx context.Context, text string, profile voice.Profile) ([]byte, error) {
	s.calls++
	return s.audio, s.err
}
func (s *fakeSynth) Close() error { return nil }

func newProcessor(client llm.Client, synth voice.Synthesizer) *Processor {
	tables := persona.MustLoad()
	return New(
		intent.NewClassifier(client, tables),
		reply.NewGenerator(client, tables, reply.Options{}),
		synth,
		suggest.New(tables),
	)
}

func TestProcessEmptyMessage(t *testing.T) {
	client := &countingClient{reply: "general_inquiry"}
	synth := &fakeSynth{audio: []byte{0x01}}
	p := newProcessor(client, synth)
	session := &conversation.Session{UserType: conversation.UserElder}

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := p.Process(context.Background(), Request{Message: msg, WantsAudio: true}, session)
		if !errors.Is(err, conversation.ErrEmptyMessage) {
			t.Errorf("Process(%q) error = %v, want ErrEmptyMessage", msg, err)
		}
	}
	if client.calls != 0 {
		t.Errorf("remote client called %d times for empty messages, want 0", client.calls)
	}
	if synth.calls != 0 {
		t.Errorf("synthesizer called %d times for empty messages, want 0", synth.calls)
	}
}

func TestProcessHappyPath(t *testing.T) {
	client := &countingClient{reply: "general_inquiry"}
	synth := &fakeSynth{audio: []byte{0xFF, 0xF3}}
	p := newProcessor(client, synth)
	session := &conversation.Session{UserType: conversation.UserCaregiver}

	res, err := p.Process(context.Background(), Request{Message: "hello there", WantsAudio: true}, session)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if res.Reply == "" {
		t.Error("empty reply")
	}
	if res.Intent != conversation.IntentGeneralInquiry {
		t.Errorf("intent = %q", res.Intent)
	}
	if len(res.Audio) != 2 {
		t.Errorf("audio length = %d, want 2", len(res.Audio))
	}
	if len(res.Suggestions) == 0 {
		t.Error("no suggestions")
	}
	if synth.calls != 1 {
		t.Errorf("synthesizer calls = %d, want 1", synth.calls)
	}
}

func TestProcessSynthesisFailureKeepsReply(t *testing.T) {
	client := &countingClient{reply: "general_inquiry"}
	synth := &fakeSynth{err: errors.New("quota exceeded")}
	p := newProcessor(client, synth)
	session := &conversation.Session{UserType: conversation.UserElder}

	res, err := p.Process(context.Background(), Request{Message: "hello", WantsAudio: true}, session)
	if err != nil {
		t.Fatalf("Process() error = %v, want nil despite synthesis failure", err)
	}
	if res.Reply == "" {
		t.Error("synthesis failure dropped the text reply")
	}
	if res.Audio != nil {
		t.Errorf("audio = %v, want nil", res.Audio)
	}
	if res.Intent != conversation.IntentGeneralInquiry {
		t.Errorf("intent = %q", res.Intent)
	}
}

func TestProcessSkipsSynthesis(t *testing.T) {
	t.Run("audio not requested", func(t *testing.T) {
		synth := &fakeSynth{audio: []byte{0x01}}
		p := newProcessor(&countingClient{reply: "general_inquiry"}, synth)
		session := &conversation.Session{UserType: conversation.UserCaregiver}
		res, err := p.Process(context.Background(), Request{Message: "hello"}, session)
		if err != nil {
			t.Fatalf("Process() error: %v", err)
		}
		if synth.calls != 0 {
			t.Errorf("synthesizer calls = %d, want 0", synth.calls)
		}
		if res.Audio != nil {
			t.Error("audio present without request")
		}
	})
	t.Run("nil synthesizer", func(t *testing.T) {
		p := newProcessor(&countingClient{reply: "general_inquiry"}, nil)
		session := &conversation.Session{UserType: conversation.UserCaregiver}
		res, err := p.Process(context.Background(), Request{Message: "hello", WantsAudio: true}, session)
		if err != nil {
			t.Fatalf("Process() error: %v", err)
		}
		if res.Audio != nil {
			t.Error("audio present with a nil synthesizer")
		}
	})
}

func TestProcessExtendsTranscript(t *testing.T) {
	p := newProcessor(&countingClient{reply: "general_inquiry"}, nil)
	session := &conversation.Session{
		UserType: conversation.UserCaregiver,
		Transcript: []conversation.Turn{
			{Role: conversation.RoleUser, Content: "earlier"},
			{Role: conversation.RoleAssistant, Content: "noted"},
		},
	}

	res, err := p.Process(context.Background(), Request{Message: "new question"}, session)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(res.Transcript) != 4 {
		t.Fatalf("transcript length = %d, want 4", len(res.Transcript))
	}
	if len(session.Transcript) != 2 {
		t.Errorf("caller's session mutated: length = %d, want 2", len(session.Transcript))
	}
	user, assistant := res.Transcript[2], res.Transcript[3]
	if user.Role != conversation.RoleUser || user.Content != "new question" {
		t.Errorf("user turn = %+v", user)
	}
	if assistant.Role != conversation.RoleAssistant || assistant.Content != res.Reply {
		t.Errorf("assistant turn = %+v", assistant)
	}
	if user.Timestamp.IsZero() || assistant.Timestamp.IsZero() {
		t.Error("appended turns missing timestamps")
	}
}

func TestProcessFullDegradation(t *testing.T) {
	// Remote model down entirely: classification falls back to keywords,
	// generation falls back to the canned table, and the elder still gets
	// a coherent fraud response.
	p := newProcessor(&countingClient{err: errors.New("connection refused")}, &fakeSynth{err: errors.New("also down")})
	session := &conversation.Session{
		UserType: conversation.UserElder,
		Elder:    &conversation.ElderContext{Name: "Margaret", Age: 78},
	}

	res, err := p.Process(context.Background(), Request{
		Message:    "Someone called about my bank account and says it's urgent",
		WantsAudio: true,
		Urgency:    conversation.UrgencyHigh,
	}, session)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if res.Intent != conversation.IntentFraudAlert {
		t.Errorf("intent = %q, want fraud_alert", res.Intent)
	}
	if !res.Degraded {
		t.Error("degraded = false with a failing model")
	}
	if strings.TrimSpace(res.Reply) == "" {
		t.Error("empty reply under full degradation")
	}
	if res.Audio != nil {
		t.Error("audio present despite synthesis failure")
	}
	if len(res.Suggestions) == 0 {
		t.Error("no suggestions")
	}
	if res.Suggestions[0] != "I think someone is trying to scam me" {
		t.Errorf("first suggestion = %q", res.Suggestions[0])
	}
	if !res.Transcript[len(res.Transcript)-1].IsError {
		t.Error("degraded assistant turn not flagged")
	}
}

func TestProcessMarksDegradedTurn(t *testing.T) {
	p := newProcessor(&countingClient{err: llm.ErrNotConfigured}, nil)
	session := &conversation.Session{UserType: conversation.UserCaregiver}
	res, err := p.Process(context.Background(), Request{Message: "hello"}, session)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if !res.Degraded {
		t.Error("degraded = false")
	}
	last := res.Transcript[len(res.Transcript)-1]
	if !last.IsError {
		t.Error("assistant turn IsError = false for a degraded reply")
	}
}
