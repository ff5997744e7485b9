package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/config"
)

func TestVersionOutput(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	// The version string and nothing else.
	if got := out.String(); got != Version+"\n" {
		t.Errorf("output = %q, want %q", got, Version+"\n")
	}
}

func TestSetupFlowWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	in := strings.NewReader("y\nsk-setup-key\n\n")
	var out bytes.Buffer

	if err := setupFlow(in, &out, path, config.Default()); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Voice.Enabled {
		t.Error("voice not enabled")
	}
	if cfg.Voice.APIKey != "sk-setup-key" {
		t.Errorf("api key = %q", cfg.Voice.APIKey)
	}
	// Blank answer keeps the default voice ID.
	if cfg.Voice.VoiceID != config.Default().Voice.VoiceID {
		t.Errorf("voice id = %q", cfg.Voice.VoiceID)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("setup output missing config path: %q", out.String())
	}
}

func TestSetupFlowDecline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	in := strings.NewReader("n\n")

	if err := setupFlow(in, &bytes.Buffer{}, path, config.Default()); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Voice.Enabled {
		t.Error("voice should stay disabled")
	}
}
