package persona

import (
	"strings"
	"testing"

	"github.com/eldercare-labs/carebridge/internal/conversation"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(tables.Keywords["fraud_alert"]) == 0 {
		t.Error("no fraud_alert keywords")
	}
	if tables.Prompts["fraud_alert"] == "" {
		t.Error("no fraud_alert prompt")
	}
}

func TestFallbackRepliesComplete(t *testing.T) {
	tables := MustLoad()
	intents := []conversation.Intent{
		conversation.IntentFraudAlert,
		conversation.IntentEmergency,
		conversation.IntentSupport,
		conversation.IntentGeneralInquiry,
	}
	for _, ut := range []conversation.UserType{conversation.UserElder, conversation.UserCaregiver} {
		for _, in := range intents {
			if got := tables.FallbackReply(ut, in); got == "" {
				t.Errorf("FallbackReply(%s, %s) is empty", ut, in)
			}
		}
	}
}

func TestSystemPromptSelection(t *testing.T) {
	tables := MustLoad()

	// fraud_alert overrides the role template for every user type.
	fraudPrompt := tables.Prompts["fraud_alert"]
	for _, ut := range []conversation.UserType{conversation.UserElder, conversation.UserCaregiver, conversation.UserSupport} {
		if got := tables.SystemPrompt(ut, conversation.IntentFraudAlert); got != fraudPrompt {
			t.Errorf("SystemPrompt(%s, fraud_alert) did not use the fraud template", ut)
		}
	}

	if got := tables.SystemPrompt(conversation.UserElder, conversation.IntentGeneralInquiry); got != tables.Prompts["elder"] {
		t.Error("SystemPrompt(elder, general_inquiry) did not use the elder template")
	}
	if got := tables.SystemPrompt(conversation.UserSupport, conversation.IntentSupport); got != tables.Prompts["support"] {
		t.Error("SystemPrompt(support, support) did not use the support template")
	}
}

func TestFallbackReplyNormalizesSupport(t *testing.T) {
	tables := MustLoad()
	got := tables.FallbackReply(conversation.UserSupport, conversation.IntentGeneralInquiry)
	want := tables.FallbackReply(conversation.UserCaregiver, conversation.IntentGeneralInquiry)
	if got != want {
		t.Error("support sessions should use the caregiver fallback table")
	}
}

func TestFallbackReplyUnknownIntent(t *testing.T) {
	tables := MustLoad()
	got := tables.FallbackReply(conversation.UserElder, conversation.Intent("bogus"))
	want := tables.FallbackReply(conversation.UserElder, conversation.IntentGeneralInquiry)
	if got != want {
		t.Error("unknown intent should use the general_inquiry fallback")
	}
}

func TestSuggestionsFor(t *testing.T) {
	tables := MustLoad()

	elder := tables.SuggestionsFor("elder", "fraud_alert")
	if len(elder) != 3 {
		t.Fatalf("elder/fraud_alert suggestions length = %d, want 3", len(elder))
	}
	if elder[0] != "I think someone is trying to scam me" {
		t.Errorf("elder/fraud_alert first suggestion = %q", elder[0])
	}

	// Unknown intent falls back to the user type's general_inquiry list.
	fallback := tables.SuggestionsFor("elder", "unknown_intent")
	general := tables.SuggestionsFor("elder", "general_inquiry")
	if strings.Join(fallback, "|") != strings.Join(general, "|") {
		t.Error("unknown intent did not fall back to general_inquiry")
	}

	// Unrecognized user type yields an empty list.
	if got := tables.SuggestionsFor("admin", "fraud_alert"); len(got) != 0 {
		t.Errorf("unknown userType suggestions = %v, want empty", got)
	}
}

func TestKeywordsLowercase(t *testing.T) {
	// The classifier lowercases the message once; keyword entries must
	// already be lowercase for substring matching to hold.
	tables := MustLoad()
	for intent, words := range tables.Keywords {
		for _, w := range words {
			if w != strings.ToLower(w) {
				t.Errorf("keyword %q under %s is not lowercase", w, intent)
			}
		}
	}
}
