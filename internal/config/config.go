// Package config loads and persists the voice-cli configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	homedir "github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
)

// PlaceholderAPIKey is the value written by the setup flow when the user
// skips entering a key. It never counts as a valid credential.
const PlaceholderAPIKey = "YOUR_API_KEY"

// DefaultModelID is the synthesis model requested from the speech API.
const DefaultModelID = "eleven_monolingual_v1"

// VoiceConfig holds the text-to-speech settings.
type VoiceConfig struct {
	Enabled         bool    `json:"enabled" env:"VOICE_ENABLED"`
	APIKey          string  `json:"api_key" env:"VOICE_API_KEY"`
	VoiceID         string  `json:"voice_id" env:"VOICE_VOICE_ID"`
	ModelID         string  `json:"model_id" env:"VOICE_MODEL_ID"`
	Stability       float64 `json:"stability" env:"VOICE_STABILITY"`
	SimilarityBoost float64 `json:"similarity_boost" env:"VOICE_SIMILARITY_BOOST"`
}

// CacheConfig holds the response cache settings.
type CacheConfig struct {
	Dir      string `json:"dir,omitempty" env:"VOICE_CACHE_DIR"`
	MaxBytes int64  `json:"max_bytes,omitempty" env:"VOICE_CACHE_MAX_BYTES"`
}

// Config is the full application configuration. It is loaded once at startup
// and threaded explicitly through the layers that need it.
type Config struct {
	Voice       VoiceConfig       `json:"voice"`
	Cache       CacheConfig       `json:"cache"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

// Default returns the in-memory configuration used when no config file
// exists. A missing file is not an error.
func Default() Config {
	return Config{
		Voice: VoiceConfig{
			Enabled:         false,
			APIKey:          PlaceholderAPIKey,
			VoiceID:         "21m00Tcm4TlvDq8ikWAM",
			ModelID:         DefaultModelID,
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
		Preferences: map[string]string{},
	}
}

// HasVoiceCredential reports whether the API key looks usable. Placeholder
// values left by the setup flow do not count.
func (c Config) HasVoiceCredential() bool {
	return c.Voice.APIKey != "" && c.Voice.APIKey != PlaceholderAPIKey
}

// VoiceReady reports whether spoken output should be attempted at all.
func (c Config) VoiceReady() bool {
	return c.Voice.Enabled && c.HasVoiceCredential()
}

// DefaultPath returns the default config file location for the current user.
func DefaultPath() (string, error) {
	scope := gap.NewScope(gap.User, "voice-cli")
	dir, err := scope.ConfigPath("config.json")
	if err != nil {
		return "", fmt.Errorf("unable to resolve config path: %w", err)
	}
	return dir, nil
}

// CacheDir returns the audio cache directory, honoring a configured
// override.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		if expanded, err := homedir.Expand(c.Cache.Dir); err == nil {
			return expanded
		}
		return c.Cache.Dir
	}
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		return filepath.Join(os.TempDir(), "voice-cli-cache")
	}
	return filepath.Join(base, "voice-cli")
}

// Load reads the config file at path, falling back to defaults when it does
// not exist, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// no file yet: defaults plus env
	case err != nil:
		return cfg, fmt.Errorf("unable to read config file: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("unable to parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse environment: %w", err)
	}
	if cfg.Voice.ModelID == "" {
		cfg.Voice.ModelID = DefaultModelID
	}
	return cfg, nil
}

// Save writes the config file, creating parent directories as needed. Only
// the setup flow calls this.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return nil
}
