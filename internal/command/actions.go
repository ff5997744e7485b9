package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/platform"
)

// Env carries the dependencies an action needs. Tests swap in a fake runner
// and a fixed clock.
type Env struct {
	Resolver *platform.Resolver
	Runner   CommandRunner
	Home     string
	Now      func() time.Time
}

// CommandRunner executes resolved platform commands.
type CommandRunner interface {
	Run(ctx context.Context, cmd platform.Command) error
	Start(cmd platform.Command) error
}

// Result is the outcome of executing a command.
type Result struct {
	// Message is printed to the user.
	Message string
	// Speech is the spoken confirmation, empty when nothing is spoken.
	Speech string
	// OK reports whether the action succeeded.
	OK bool
	// Exit requests the interactive loop to stop.
	Exit bool
	// ShowHelp requests the registry listing to be printed.
	ShowHelp bool
}

// NewEnv builds the default execution environment.
func NewEnv(resolver *platform.Resolver, runner CommandRunner) Env {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("unable to resolve home directory", "err", err)
	}
	return Env{
		Resolver: resolver,
		Runner:   runner,
		Home:     home,
		Now:      time.Now,
	}
}

// Execute runs the action bound to cmd. Failures are reported in the result,
// never by panicking; external process errors are local to the one action.
func Execute(ctx context.Context, cmd Command, env Env) Result {
	switch cmd.Kind {
	case KindReply:
		return Result{Message: cmd.Response, Speech: cmd.Response, OK: true}

	case KindTime:
		speech := fmt.Sprintf("The time is %s", env.Now().Format("3:04 PM"))
		return Result{Message: speech, Speech: speech, OK: true}

	case KindDate:
		speech := fmt.Sprintf("Today is %s", env.Now().Format("Monday, January 2, 2006"))
		return Result{Message: speech, Speech: speech, OK: true}

	case KindOpenURL:
		open := env.Resolver.OpenTarget(cmd.Target)
		if err := env.Runner.Run(ctx, open); err != nil {
			log.Warn("open url failed", "url", cmd.Target, "err", err)
			return Result{Message: fmt.Sprintf("Could not open %s", cmd.Target)}
		}
		return Result{Message: fmt.Sprintf("Opened %s", cmd.Target), Speech: cmd.Response, OK: true}

	case KindOpenFolder:
		path := filepath.Join(env.Home, cmd.Target)
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			return Result{Message: "Folder not found"}
		}
		open := env.Resolver.OpenTarget(path)
		if err := env.Runner.Run(ctx, open); err != nil {
			log.Warn("open folder failed", "path", path, "err", err)
			return Result{Message: fmt.Sprintf("Could not open folder: %s", path)}
		}
		return Result{Message: fmt.Sprintf("Opened folder: %s", path), Speech: cmd.Response, OK: true}

	case KindOpenApp:
		app, ok := env.Resolver.App(cmd.Target)
		if !ok {
			return Result{Message: fmt.Sprintf("No %s available on this platform", cmd.Target)}
		}
		if err := env.Runner.Run(ctx, app); err != nil {
			log.Warn("open app failed", "app", cmd.Target, "err", err)
			return Result{Message: fmt.Sprintf("Could not open %s", cmd.Target)}
		}
		return Result{Message: fmt.Sprintf("Opened %s", cmd.Target), Speech: cmd.Response, OK: true}

	case KindOpenTerminal:
		// Terminal emulators stay open: start without waiting for exit.
		if err := env.Runner.Start(env.Resolver.Terminal()); err != nil {
			log.Warn("open terminal failed", "err", err)
			return Result{Message: "Could not open a terminal"}
		}
		return Result{Message: "Opened a terminal", Speech: cmd.Response, OK: true}

	case KindHelp:
		return Result{Message: "Here's what I can do:", OK: true, ShowHelp: true}

	case KindExit:
		return Result{Message: cmd.Response, Speech: cmd.Response, OK: true, Exit: true}

	default:
		return Result{Message: fmt.Sprintf("Unhandled command kind %q", cmd.Kind)}
	}
}
