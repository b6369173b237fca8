// Package elevenlabs implements the voice.Synthesizer interface against
// the ElevenLabs text-to-speech API.
//
// The API takes a voice ID in the URL path and synthesis settings in the
// body, and streams back MPEG audio. Connections are per-request.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/eldercare-labs/carebridge/internal/config"
	"github.com/eldercare-labs/carebridge/internal/voice"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// defaultVoices maps voice slots to ElevenLabs premade voice IDs.
var defaultVoices = map[string]string{
	voice.SlotAlert:          "21m00Tcm4TlvDq8ikWAM", // Rachel
	voice.SlotCalm:           "EXAVITQu4vr4xnSDxMaL", // Sarah
	voice.SlotConversational: "pNInz6obpgDQGcFmaJgB", // Adam
}

// Synthesizer implements voice.Synthesizer using the ElevenLabs API.
type Synthesizer struct {
	apiKey  string
	baseURL string
	model   string
	voices  map[string]string
	client  *http.Client
}

// New creates a new ElevenLabs synthesizer from config.
func New(cfg config.ElevenLabsConfig) *Synthesizer {
	// Merge user-configured voice IDs with the premade defaults.
	voices := make(map[string]string, len(defaultVoices))
	for k, v := range defaultVoices {
		voices[k] = v
	}
	for k, v := range cfg.Voices {
		voices[k] = v
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "eleven_turbo_v2_5"
	}

	return &Synthesizer{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		voices:  voices,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type synthesisRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings voice.Settings `json:"voice_settings"`
	OutputFormat  string         `json:"output_format,omitempty"`
}

// Synthesize sends text to the ElevenLabs API and returns MPEG audio.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, profile voice.Profile) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text for synthesis")
	}
	if s.apiKey == "" {
		return nil, fmt.Errorf("elevenlabs api key not configured")
	}

	voiceID := s.voices[profile.Slot]
	if voiceID == "" {
		voiceID = s.voices[voice.SlotConversational]
	}

	body, err := json.Marshal(synthesisRequest{
		Text:          text,
		ModelID:       s.model,
		VoiceSettings: profile.Settings,
		OutputFormat:  "mp3_44100_128",
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s/stream", s.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.apiKey)

	slog.Debug("elevenlabs synthesize", "voice", profile.Slot, "voice_id", voiceID, "text_length", len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("synthesis failed (status %d): %s", resp.StatusCode, respBody)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis returned no audio")
	}

	slog.Debug("elevenlabs synthesis complete", "audio_bytes", len(audio))
	return audio, nil
}

// Close is a no-op — connections are per-request.
func (s *Synthesizer) Close() error { return nil }
