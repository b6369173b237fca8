// Package persona holds the data tables that drive the assistant's
// behavior: intent keyword sets, system prompts, canned fallback replies
// and follow-up suggestions.
//
// All four tables live in one embedded YAML document so the fallback and
// suggestion tables cannot drift apart. The tables are loaded once and
// treated as immutable afterwards.
package persona

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/eldercare-labs/carebridge/internal/conversation"
)

//go:embed persona.yaml
var personaYAML []byte

// Tables is the parsed persona document.
type Tables struct {
	// Keywords maps an intent to its case-insensitive substring set.
	// general_inquiry has no keywords; it is the default.
	Keywords map[string][]string `yaml:"keywords"`

	// Prompts maps a user type (elder, caregiver, support) or the
	// fraud_alert override to a system prompt template.
	Prompts map[string]string `yaml:"prompts"`

	// Fallbacks maps userType -> intent -> canned reply. Only elder and
	// caregiver have entries; support sessions normalize to caregiver.
	Fallbacks map[string]map[string]string `yaml:"fallbacks"`

	// Suggestions maps userType -> intent -> follow-up prompts.
	Suggestions map[string]map[string][]string `yaml:"suggestions"`
}

// Load parses and validates the embedded persona document.
func Load() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(personaYAML, &t); err != nil {
		return nil, fmt.Errorf("parsing persona tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid persona tables: %w", err)
	}
	return &t, nil
}

// MustLoad is Load for startup paths where a broken embedded table is a
// programming error.
func MustLoad() *Tables {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) validate() error {
	for _, role := range []string{"elder", "caregiver", "support", "fraud_alert"} {
		if t.Prompts[role] == "" {
			return fmt.Errorf("missing prompt %q", role)
		}
	}
	intents := []conversation.Intent{
		conversation.IntentFraudAlert,
		conversation.IntentEmergency,
		conversation.IntentSupport,
		conversation.IntentGeneralInquiry,
	}
	for _, ut := range []string{"elder", "caregiver"} {
		for _, in := range intents {
			if t.Fallbacks[ut][string(in)] == "" {
				return fmt.Errorf("missing fallback reply %s/%s", ut, in)
			}
		}
	}
	if len(t.Suggestions["elder"]) == 0 || len(t.Suggestions["caregiver"]) == 0 {
		return fmt.Errorf("missing suggestion tables")
	}
	for _, in := range []conversation.Intent{conversation.IntentFraudAlert, conversation.IntentEmergency, conversation.IntentSupport} {
		if len(t.Keywords[string(in)]) == 0 {
			return fmt.Errorf("missing keyword set for %s", in)
		}
	}
	return nil
}

// SystemPrompt selects the system prompt for a turn. The fraud_alert
// override wins regardless of user type; otherwise the user type picks
// its own template.
func (t *Tables) SystemPrompt(ut conversation.UserType, intent conversation.Intent) string {
	if intent == conversation.IntentFraudAlert {
		return t.Prompts["fraud_alert"]
	}
	if p, ok := t.Prompts[string(ut)]; ok {
		return p
	}
	return t.Prompts["caregiver"]
}

// FallbackReply returns the canned reply for a (userType, intent) pair.
// Support sessions use the caregiver table; unknown intents use
// general_inquiry.
func (t *Tables) FallbackReply(ut conversation.UserType, intent conversation.Intent) string {
	key := string(ut)
	if _, ok := t.Fallbacks[key]; !ok {
		key = "caregiver"
	}
	if reply, ok := t.Fallbacks[key][string(intent)]; ok {
		return reply
	}
	return t.Fallbacks[key][string(conversation.IntentGeneralInquiry)]
}

// SuggestionsFor returns the follow-up prompts for a (userType, intent)
// pair. An intent with no entry falls back to the user type's
// general_inquiry list; an unrecognized user type yields an empty list.
func (t *Tables) SuggestionsFor(userType, intent string) []string {
	byIntent, ok := t.Suggestions[userType]
	if !ok {
		return []string{}
	}
	if s, ok := byIntent[intent]; ok {
		return s
	}
	return byIntent[string(conversation.IntentGeneralInquiry)]
}
