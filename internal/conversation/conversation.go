// Package conversation defines the core data types flowing through the
// carebridge turn pipeline.
package conversation

import (
	"encoding/base64"
	"errors"
	"time"
)

// ErrEmptyMessage is returned when a turn is requested with no message text.
// It is the only hard failure the pipeline produces; every remote problem
// degrades into a fallback instead.
var ErrEmptyMessage = errors.New("message is required")

// Role identifies the author of a transcript turn. The system role exists
// only inside remote prompts and never appears in a stored transcript.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserType selects the prompt, fallback and suggestion tables for a session.
type UserType string

const (
	UserElder     UserType = "elder"
	UserCaregiver UserType = "caregiver"
	UserSupport   UserType = "support"
)

// ParseUserType maps free-form input to a UserType, defaulting to caregiver.
func ParseUserType(s string) UserType {
	switch UserType(s) {
	case UserElder, UserCaregiver, UserSupport:
		return UserType(s)
	default:
		return UserCaregiver
	}
}

// Intent classifies the purpose of a user message. The set is closed:
// the classifier, the fallback tables and the suggestion tables must all
// agree on these four values.
type Intent string

const (
	IntentFraudAlert     Intent = "fraud_alert"
	IntentEmergency      Intent = "emergency"
	IntentSupport        Intent = "support"
	IntentGeneralInquiry Intent = "general_inquiry"
)

// ParseIntent reports whether s is one of the four valid intent labels.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case IntentFraudAlert, IntentEmergency, IntentSupport, IntentGeneralInquiry:
		return Intent(s), true
	default:
		return "", false
	}
}

// Urgency nudges voice synthesis toward a more emphatic delivery.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

// ElderContext is the optional elder profile supplied by the caller. It is
// used only as prompt context and is never mutated by the pipeline.
// Preferences is a flat key-value map (e.g. "hobbies": "gardening"); an
// empty map is the documented default.
type ElderContext struct {
	Name        string            `json:"name,omitempty"`
	Age         int               `json:"age,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

// Turn is one message within a session transcript. Turns are immutable
// once created; the transcript is append-only.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Intent is set only on assistant turns that followed a
	// classification step.
	Intent Intent `json:"intent,omitempty"`

	// IsError marks an assistant turn whose content is a degraded
	// fallback message rather than a generated reply.
	IsError bool `json:"isError,omitempty"`
}

// NewUserTurn creates a user turn stamped with the current time.
func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content, Timestamp: time.Now().UTC()}
}

// NewAssistantTurn creates an assistant turn stamped with the current time.
func NewAssistantTurn(content string, intent Intent, degraded bool) Turn {
	return Turn{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Intent:    intent,
		IsError:   degraded,
	}
}

// Session is the caller-owned, in-memory conversation state threaded
// through each turn. The pipeline never mutates a caller's session; it
// returns an extended transcript copy for the caller to adopt.
type Session struct {
	UserType   UserType      `json:"userType"`
	Elder      *ElderContext `json:"elderInfo,omitempty"`
	Transcript []Turn        `json:"conversationHistory"`
}

// Extend returns a new transcript consisting of the session's turns
// followed by the given turns. The session's own slice is left untouched.
func (s *Session) Extend(turns ...Turn) []Turn {
	out := make([]Turn, 0, len(s.Transcript)+len(turns))
	out = append(out, s.Transcript...)
	out = append(out, turns...)
	return out
}

// TurnResult is the outcome of processing one conversation turn.
type TurnResult struct {
	// Reply is the assistant's text response. Never empty.
	Reply string `json:"response"`

	// Intent is the classification the reply was generated under.
	Intent Intent `json:"intent"`

	// Audio is the synthesized reply as raw MPEG audio bytes. Nil when
	// audio was not requested, not configured, or synthesis failed.
	Audio []byte `json:"-"`

	// Transcript is the updated conversation history (caller's turns
	// plus the new user and assistant turns).
	Transcript []Turn `json:"conversationHistory"`

	// Suggestions are follow-up prompts for the user.
	Suggestions []string `json:"suggestions"`

	// Degraded is true when the reply came from the local fallback
	// table instead of the remote model.
	Degraded bool `json:"-"`
}

// AudioPayload is the wire form of synthesized audio.
type AudioPayload struct {
	Audio    string `json:"audio"`
	MimeType string `json:"mimeType"`
}

// AudioPayload base64-encodes the result's audio bytes for transport.
// Returns nil when the turn carries no audio.
func (r *TurnResult) AudioPayload() *AudioPayload {
	if len(r.Audio) == 0 {
		return nil
	}
	return &AudioPayload{
		Audio:    base64.StdEncoding.EncodeToString(r.Audio),
		MimeType: "audio/mpeg",
	}
}
