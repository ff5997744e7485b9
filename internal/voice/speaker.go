package voice

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/config"
)

// Speaker narrates response text. With voice disabled or no valid
// credential it prints the text and does nothing else; otherwise it serves
// audio from the cache, synthesizing on a miss. Every failure degrades to
// text-only output; Speak never fails a command.
type Speaker struct {
	cfg   config.Config
	synth Synthesizer
	cache *Cache
	play  Player
	out   io.Writer
}

// NewSpeaker wires a speaker from its parts.
func NewSpeaker(cfg config.Config, synth Synthesizer, cache *Cache, player Player, out io.Writer) *Speaker {
	return &Speaker{cfg: cfg, synth: synth, cache: cache, play: player, out: out}
}

// Speak prints text and, when the voice tier is active, plays the
// synthesized audio for it.
func (s *Speaker) Speak(ctx context.Context, text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(s.out, text)

	if !s.cfg.VoiceReady() {
		return
	}

	path, err := s.cache.Get(text)
	if err == nil {
		s.playFile(ctx, path)
		return
	}

	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		log.Warn("speech synthesis failed", "err", err)
		return
	}

	path, err = s.cache.Put(text, audio)
	if err != nil {
		log.Warn("unable to cache audio", "err", err)
		return
	}
	s.playFile(ctx, path)
}

func (s *Speaker) playFile(ctx context.Context, path string) {
	err := s.play.Play(ctx, path)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoPlayer):
		// text already shown; audio is strictly additive
		log.Info("playback unavailable")
	default:
		log.Warn("playback failed", "path", path, "err", err)
	}
}
