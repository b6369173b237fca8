package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eldercare-labs/carebridge/internal/config"
	"github.com/eldercare-labs/carebridge/internal/voice"
)

func alertProfile() voice.Profile {
	return voice.Profile{
		Slot:     voice.SlotAlert,
		Settings: voice.Settings{Stability: 0.7, SimilarityBoost: 0.8, Style: 0.35, SpeakerBoost: true},
	}
}

func TestSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody struct {
		Text          string `json:"text"`
		ModelID       string `json:"model_id"`
		VoiceSettings struct {
			Stability       float64 `json:"stability"`
			SimilarityBoost float64 `json:"similarity_boost"`
			Style           float64 `json:"style"`
			SpeakerBoost    bool    `json:"use_speaker_boost"`
		} `json:"voice_settings"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte{0xFF, 0xF3, 0x01, 0x02})
	}))
	defer srv.Close()

	s := New(config.ElevenLabsConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "eleven_turbo_v2_5",
	})

	audio, err := s.Synthesize(context.Background(), "Do not share the code.", alertProfile())
	if err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}
	if len(audio) != 4 {
		t.Errorf("audio length = %d, want 4", len(audio))
	}

	if want := "/v1/text-to-speech/21m00Tcm4TlvDq8ikWAM/stream"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if gotKey != "test-key" {
		t.Errorf("xi-api-key = %q", gotKey)
	}
	if gotBody.Text != "Do not share the code." {
		t.Errorf("text = %q", gotBody.Text)
	}
	if gotBody.ModelID != "eleven_turbo_v2_5" {
		t.Errorf("model_id = %q", gotBody.ModelID)
	}
	if gotBody.VoiceSettings.Stability != 0.7 || !gotBody.VoiceSettings.SpeakerBoost {
		t.Errorf("voice_settings = %+v", gotBody.VoiceSettings)
	}
}

func TestSynthesizeVoiceOverride(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte{0x01})
	}))
	defer srv.Close()

	s := New(config.ElevenLabsConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Voices:  map[string]string{voice.SlotAlert: "custom-voice-id"},
	})
	if _, err := s.Synthesize(context.Background(), "hello", alertProfile()); err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}
	if !strings.Contains(gotPath, "custom-voice-id") {
		t.Errorf("path = %q, want the configured voice ID", gotPath)
	}
}

func TestSynthesizeUnknownSlotFallsBack(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte{0x01})
	}))
	defer srv.Close()

	s := New(config.ElevenLabsConfig{APIKey: "test-key", BaseURL: srv.URL})
	if _, err := s.Synthesize(context.Background(), "hello", voice.Profile{Slot: "bogus"}); err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}
	if !strings.Contains(gotPath, "pNInz6obpgDQGcFmaJgB") {
		t.Errorf("path = %q, want the conversational default voice", gotPath)
	}
}

func TestSynthesizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	t.Run("empty text", func(t *testing.T) {
		s := New(config.ElevenLabsConfig{APIKey: "test-key", BaseURL: srv.URL})
		if _, err := s.Synthesize(context.Background(), "", alertProfile()); err == nil {
			t.Error("empty text should error")
		}
	})
	t.Run("missing key", func(t *testing.T) {
		s := New(config.ElevenLabsConfig{BaseURL: srv.URL})
		if _, err := s.Synthesize(context.Background(), "hello", alertProfile()); err == nil {
			t.Error("missing api key should error")
		}
	})
	t.Run("non-200", func(t *testing.T) {
		s := New(config.ElevenLabsConfig{APIKey: "test-key", BaseURL: srv.URL})
		_, err := s.Synthesize(context.Background(), "hello", alertProfile())
		if err == nil {
			t.Fatal("non-200 response should error")
		}
		if !strings.Contains(err.Error(), "401") {
			t.Errorf("error %q does not mention the status", err)
		}
	})
	t.Run("empty audio", func(t *testing.T) {
		empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer empty.Close()
		s := New(config.ElevenLabsConfig{APIKey: "test-key", BaseURL: empty.URL})
		if _, err := s.Synthesize(context.Background(), "hello", alertProfile()); err == nil {
			t.Error("empty audio body should error")
		}
	})
}
