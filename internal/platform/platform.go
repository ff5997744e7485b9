// Package platform resolves OS-level commands for actions and audio
// playback. Every Windows/macOS/Linux branch in the program lives here.
package platform

import (
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

// Platform represents the current operating system platform.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformDarwin  Platform = "darwin"
	PlatformWindows Platform = "windows"
	PlatformUnknown Platform = "unknown"
)

// Detect returns the current platform.
func Detect() Platform {
	switch runtime.GOOS {
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformDarwin
	case "windows":
		return PlatformWindows
	default:
		return PlatformUnknown
	}
}

// Command is an argv-style external command.
type Command struct {
	Name string
	Args []string
}

// Resolver maps abstract actions to concrete external commands for one
// platform. Construct it once and pass it down; actions never branch on the
// OS themselves.
type Resolver struct {
	os Platform
}

// NewResolver creates a resolver for the detected platform.
func NewResolver() *Resolver {
	p := Detect()
	log.Debug("platform detected", "os", p, "arch", runtime.GOARCH)
	return &Resolver{os: p}
}

// NewResolverFor creates a resolver for a specific platform. Used by tests
// to exercise every branch regardless of the host.
func NewResolverFor(p Platform) *Resolver {
	return &Resolver{os: p}
}

// OS returns the resolver's platform.
func (r *Resolver) OS() Platform {
	return r.os
}

// OpenTarget returns the command that opens a URL, file, or folder with the
// default handler.
func (r *Resolver) OpenTarget(target string) Command {
	switch r.os {
	case PlatformWindows:
		// the empty string is the window title slot of start
		return Command{Name: "cmd", Args: []string{"/c", "start", "", target}}
	case PlatformDarwin:
		return Command{Name: "open", Args: []string{target}}
	default:
		return Command{Name: "xdg-open", Args: []string{target}}
	}
}

// Terminal returns the command that spawns a new terminal window.
func (r *Resolver) Terminal() Command {
	switch r.os {
	case PlatformWindows:
		return Command{Name: "cmd", Args: []string{"/c", "start", "cmd"}}
	case PlatformDarwin:
		return Command{Name: "open", Args: []string{"-a", "Terminal"}}
	default:
		return Command{Name: "x-terminal-emulator", Args: nil}
	}
}

// App returns the command that launches a named application. The name is an
// abstract identifier (e.g. "editor", "calculator") resolved per platform.
func (r *Resolver) App(name string) (Command, bool) {
	table, ok := appCommands[name]
	if !ok {
		return Command{}, false
	}
	cmd, ok := table[r.os]
	return cmd, ok
}

// appCommands maps abstract application names to per-platform launch
// commands.
var appCommands = map[string]map[Platform]Command{
	"editor": {
		PlatformWindows: {Name: "cmd", Args: []string{"/c", "start", "", "notepad"}},
		PlatformDarwin:  {Name: "open", Args: []string{"-a", "TextEdit"}},
		PlatformLinux:   {Name: "gedit", Args: nil},
	},
	"calculator": {
		PlatformWindows: {Name: "cmd", Args: []string{"/c", "start", "", "calc"}},
		PlatformDarwin:  {Name: "open", Args: []string{"-a", "Calculator"}},
		PlatformLinux:   {Name: "gnome-calculator", Args: nil},
	},
}

// linuxPlayers are tried in order on the Unix branch; the first binary found
// on PATH wins.
var linuxPlayers = []string{"mpg123", "ffplay", "aplay"}

// Player returns the command that plays an audio file, or false when no
// player binary is available. Absence is degraded, never fatal.
func (r *Resolver) Player(audioPath string) (Command, bool) {
	switch r.os {
	case PlatformWindows:
		script := "(New-Object Media.SoundPlayer '" + audioPath + "').PlaySync()"
		return Command{Name: "powershell", Args: []string{"-NoProfile", "-c", script}}, true
	case PlatformDarwin:
		return Command{Name: "afplay", Args: []string{audioPath}}, true
	default:
		for _, name := range linuxPlayers {
			if !commandAvailable(name) {
				continue
			}
			if name == "ffplay" {
				return Command{Name: name, Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet", audioPath}}, true
			}
			return Command{Name: name, Args: []string{audioPath}}, true
		}
		return Command{}, false
	}
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
