// Package assistant runs the read-dispatch-respond flow, one command at a
// time.
package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/command"
)

// Narrator speaks (or just prints) a response line.
type Narrator interface {
	Speak(ctx context.Context, text string)
}

// Session dispatches phrases against the registry and narrates the results.
type Session struct {
	Registry *command.Registry
	Narrator Narrator
	Env      command.Env
	In       io.Reader
	Out      io.Writer
	// Prompt is printed before each interactive read. Empty for one-shot
	// runs and piped input.
	Prompt string
}

// RunOnce dispatches a single phrase and reports whether its action
// succeeded. Unknown phrases never execute anything.
func (s *Session) RunOnce(ctx context.Context, phrase string) bool {
	cmd, ok := s.Registry.Lookup(phrase)
	if !ok {
		fmt.Fprintf(s.Out, "Unknown command: %q\n\n", strings.TrimSpace(phrase))
		fmt.Fprint(s.Out, FormatRegistry(s.Registry))
		return false
	}

	res := command.Execute(ctx, cmd, s.Env)
	if res.Speech != "" {
		s.Narrator.Speak(ctx, res.Speech)
		if res.Message != res.Speech {
			fmt.Fprintln(s.Out, res.Message)
		}
	} else if res.Message != "" {
		fmt.Fprintln(s.Out, res.Message)
	}
	if res.ShowHelp {
		fmt.Fprint(s.Out, FormatRegistry(s.Registry))
	}
	return res.OK
}

// Loop reads one line per turn and processes it fully before the next read.
// The line read stands in for speech recognition on purpose. Returns when an
// exit phrase runs, input ends, or the context is canceled.
func (s *Session) Loop(ctx context.Context) error {
	scanner := bufio.NewScanner(s.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Prompt != "" {
			fmt.Fprint(s.Out, s.Prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("unable to read input: %w", err)
			}
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, known := s.Registry.Lookup(line)
		s.RunOnce(ctx, line)
		if known && cmd.Kind == command.KindExit {
			return nil
		}
		log.Debug("turn complete", "phrase", command.Normalize(line), "known", known)
	}
}

// FormatRegistry renders the registry as an aligned phrase/description
// listing.
func FormatRegistry(reg *command.Registry) string {
	all := reg.All()
	width := 0
	for _, c := range all {
		if len(c.Phrase) > width {
			width = len(c.Phrase)
		}
	}

	var b strings.Builder
	for _, c := range all {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, c.Phrase, c.Description)
	}
	return b.String()
}
