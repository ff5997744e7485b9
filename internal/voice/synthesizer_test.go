package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/config"
)

func testVoiceConfig() config.VoiceConfig {
	return config.VoiceConfig{
		Enabled:         true,
		APIKey:          "test-key",
		VoiceID:         "voice-123",
		ModelID:         config.DefaultModelID,
		Stability:       0.5,
		SimilarityBoost: 0.75,
	}
}

func newTestClient(baseURL string) *ElevenLabs {
	e := NewElevenLabs(testVoiceConfig())
	e.BaseURL = baseURL
	e.Client = &http.Client{Timeout: 5 * time.Second}
	return e
}

func TestSynthesizeRequestShape(t *testing.T) {
	var gotPath, gotKey, gotAccept string
	var gotBody synthesisRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		gotAccept = r.Header.Get("Accept")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_, _ = w.Write([]byte("ABC"))
	}))
	defer srv.Close()

	audio, err := newTestClient(srv.URL).Synthesize(context.Background(), "Opening your browser")
	if err != nil {
		t.Fatal(err)
	}

	if string(audio) != "ABC" {
		t.Errorf("audio = %q", audio)
	}
	if gotPath != "/v1/text-to-speech/voice-123" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("xi-api-key = %q", gotKey)
	}
	if gotAccept != "audio/mpeg" {
		t.Errorf("accept = %q", gotAccept)
	}
	if gotBody.Text != "Opening your browser" {
		t.Errorf("text = %q", gotBody.Text)
	}
	if gotBody.ModelID != config.DefaultModelID {
		t.Errorf("model_id = %q", gotBody.ModelID)
	}
	if gotBody.VoiceSettings.Stability != 0.5 || gotBody.VoiceSettings.SimilarityBoost != 0.75 {
		t.Errorf("voice_settings = %+v", gotBody.VoiceSettings)
	}
}

func TestSynthesizeNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error missing status: %v", err)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error missing body snippet: %v", err)
	}
}

func TestSynthesizeContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv.URL).Synthesize(ctx, "hello")
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
}
