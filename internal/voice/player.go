package voice

import (
	"context"
	"errors"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/platform"
)

// ErrNoPlayer is returned when no audio player binary is available.
var ErrNoPlayer = errors.New("no audio player available")

// Player plays an audio file located at path.
type Player interface {
	Play(ctx context.Context, path string) error
}

// ExecPlayer plays audio through the platform's external player binary.
type ExecPlayer struct {
	Resolver *platform.Resolver
	Runner   *platform.Runner
}

// NewExecPlayer creates a player for the given platform resolver.
func NewExecPlayer(resolver *platform.Resolver, runner *platform.Runner) *ExecPlayer {
	return &ExecPlayer{Resolver: resolver, Runner: runner}
}

// Play blocks until playback finishes. ErrNoPlayer when no player binary is
// found; the caller degrades instead of failing the command.
func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	cmd, ok := p.Resolver.Player(path)
	if !ok {
		return ErrNoPlayer
	}
	return p.Runner.Run(ctx, cmd)
}
