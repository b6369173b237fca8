// Package voice defines the interface for text-to-speech synthesis.
//
// carebridge voices the assistant's replies so elders can listen instead
// of read. Synthesis is strictly best-effort: a turn whose audio cannot
// be produced still returns its text reply unchanged.
package voice

import (
	"context"

	"github.com/eldercare-labs/carebridge/internal/conversation"
)

// Voice slots. The synthesizer backend maps each slot to a concrete
// vendor voice ID.
const (
	SlotAlert          = "alert"
	SlotCalm           = "calm"
	SlotConversational = "conversational"
)

// Settings are the tunable synthesis parameters.
type Settings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost"`
}

// Profile pairs a voice slot with its synthesis settings.
type Profile struct {
	Slot     string
	Settings Settings
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	// Synthesize generates MPEG audio from the given text.
	Synthesize(ctx context.Context, text string, profile Profile) ([]byte, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}

// ProfileFor selects the voice profile for a turn. Selection precedence:
// an alert intent (fraud_alert, emergency) picks the alert voice
// regardless of role; elder sessions pick the calm voice; everything
// else gets the conversational voice. High urgency then pushes the
// settings toward a more emphatic delivery.
func ProfileFor(intent conversation.Intent, ut conversation.UserType, urgency conversation.Urgency) Profile {
	var p Profile
	switch {
	case intent == conversation.IntentFraudAlert || intent == conversation.IntentEmergency:
		p = Profile{Slot: SlotAlert, Settings: Settings{Stability: 0.7, SimilarityBoost: 0.8, Style: 0.35, SpeakerBoost: true}}
	case ut == conversation.UserElder:
		p = Profile{Slot: SlotCalm, Settings: Settings{Stability: 0.8, SimilarityBoost: 0.75, Style: 0.1, SpeakerBoost: true}}
	default:
		p = Profile{Slot: SlotConversational, Settings: Settings{Stability: 0.5, SimilarityBoost: 0.7, Style: 0.2, SpeakerBoost: true}}
	}

	if urgency == conversation.UrgencyHigh {
		p.Settings.Stability = 0.3
		p.Settings.Style = 0.6
	}
	return p
}
