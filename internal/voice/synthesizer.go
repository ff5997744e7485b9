// Package voice turns response text into spoken audio through a remote
// synthesis API, memoized on disk, played by an external player binary.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/config"
)

// DefaultBaseURL is the production synthesis endpoint.
const DefaultBaseURL = "https://api.elevenlabs.io"

// Synthesizer converts text to audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ElevenLabs is a Synthesizer backed by the ElevenLabs HTTP API. One POST
// per synthesis; a 200 response carries the audio body.
type ElevenLabs struct {
	BaseURL string
	APIKey  string
	VoiceID string
	ModelID string

	Stability       float64
	SimilarityBoost float64

	Client *http.Client
}

// NewElevenLabs builds a client from the voice configuration.
func NewElevenLabs(cfg config.VoiceConfig) *ElevenLabs {
	return &ElevenLabs{
		BaseURL:         DefaultBaseURL,
		APIKey:          cfg.APIKey,
		VoiceID:         cfg.VoiceID,
		ModelID:         cfg.ModelID,
		Stability:       cfg.Stability,
		SimilarityBoost: cfg.SimilarityBoost,
		Client:          &http.Client{Timeout: 30 * time.Second},
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize requests audio for text. Non-200 statuses are errors; the
// caller decides whether to degrade to text-only output.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: e.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       e.Stability,
			SimilarityBoost: e.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", e.BaseURL, e.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("unable to build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.APIKey)

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("synthesis API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read synthesis response: %w", err)
	}
	return audio, nil
}
