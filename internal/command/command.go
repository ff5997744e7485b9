// Package command defines the phrase registry and the actions bound to it.
package command

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags the action bound to a phrase. Commands are plain data; the
// dispatch switch lives in Execute.
type Kind string

const (
	KindReply        Kind = "reply"
	KindTime         Kind = "time"
	KindDate         Kind = "date"
	KindOpenURL      Kind = "open_url"
	KindOpenFolder   Kind = "open_folder"
	KindOpenApp      Kind = "open_app"
	KindOpenTerminal Kind = "open_terminal"
	KindHelp         Kind = "help"
	KindExit         Kind = "exit"
)

// Command binds a phrase to an action. Target is the kind-specific payload:
// a URL for KindOpenURL, a folder name under $HOME for KindOpenFolder, an
// abstract application name for KindOpenApp.
type Command struct {
	Phrase      string
	Description string
	Response    string
	Kind        Kind
	Target      string
}

// Registry is a static phrase-to-command mapping with normalized keys.
type Registry struct {
	commands map[string]Command
}

// Normalize canonicalizes user input for lookup: lowercase, surrounding
// whitespace trimmed.
func Normalize(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

// NewRegistry builds a registry from the given commands. Duplicate
// normalized phrases are rejected.
func NewRegistry(commands ...Command) (*Registry, error) {
	r := &Registry{commands: make(map[string]Command, len(commands))}
	for _, c := range commands {
		key := Normalize(c.Phrase)
		if key == "" {
			return nil, fmt.Errorf("empty phrase for command %q", c.Description)
		}
		if _, exists := r.commands[key]; exists {
			return nil, fmt.Errorf("duplicate phrase %q", key)
		}
		r.commands[key] = c
	}
	return r, nil
}

// Lookup finds the command for an input phrase. Matching is exact on the
// normalized phrase; there is no fuzzy or partial matching.
func (r *Registry) Lookup(phrase string) (Command, bool) {
	c, ok := r.commands[Normalize(phrase)]
	return c, ok
}

// Len returns the number of registered phrases.
func (r *Registry) Len() int {
	return len(r.commands)
}

// All returns every command sorted by phrase, for help listings.
func (r *Registry) All() []Command {
	all := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Phrase < all[j].Phrase })
	return all
}

// Default returns the built-in command set.
func Default() *Registry {
	r, err := NewRegistry(
		Command{
			Phrase:      "hello",
			Description: "Say hello",
			Response:    "Hello! How can I help you?",
			Kind:        KindReply,
		},
		Command{
			Phrase:      "what time is it",
			Description: "Tell the current time",
			Kind:        KindTime,
		},
		Command{
			Phrase:      "time",
			Description: "Tell the current time",
			Kind:        KindTime,
		},
		Command{
			Phrase:      "what's the date",
			Description: "Tell today's date",
			Kind:        KindDate,
		},
		Command{
			Phrase:      "date",
			Description: "Tell today's date",
			Kind:        KindDate,
		},
		Command{
			Phrase:      "open browser",
			Description: "Open the default web browser",
			Response:    "Opening your browser",
			Kind:        KindOpenURL,
			Target:      "https://www.google.com",
		},
		Command{
			Phrase:      "search google",
			Description: "Open Google search",
			Response:    "Opening Google",
			Kind:        KindOpenURL,
			Target:      "https://www.google.com",
		},
		Command{
			Phrase:      "open downloads",
			Description: "Open the Downloads folder",
			Response:    "Opening your downloads folder",
			Kind:        KindOpenFolder,
			Target:      "Downloads",
		},
		Command{
			Phrase:      "open documents",
			Description: "Open the Documents folder",
			Response:    "Opening your documents folder",
			Kind:        KindOpenFolder,
			Target:      "Documents",
		},
		Command{
			Phrase:      "open desktop",
			Description: "Open the Desktop folder",
			Response:    "Opening your desktop folder",
			Kind:        KindOpenFolder,
			Target:      "Desktop",
		},
		Command{
			Phrase:      "open terminal",
			Description: "Open a new terminal window",
			Response:    "Opening a terminal",
			Kind:        KindOpenTerminal,
		},
		Command{
			Phrase:      "open editor",
			Description: "Open the system text editor",
			Response:    "Opening your editor",
			Kind:        KindOpenApp,
			Target:      "editor",
		},
		Command{
			Phrase:      "open calculator",
			Description: "Open the calculator",
			Response:    "Opening the calculator",
			Kind:        KindOpenApp,
			Target:      "calculator",
		},
		Command{
			Phrase:      "help",
			Description: "List available commands",
			Kind:        KindHelp,
		},
		Command{
			Phrase:      "what can you do",
			Description: "List available commands",
			Kind:        KindHelp,
		},
		Command{
			Phrase:      "exit",
			Description: "Exit the assistant",
			Response:    "Goodbye!",
			Kind:        KindExit,
		},
		Command{
			Phrase:      "quit",
			Description: "Exit the assistant",
			Response:    "Goodbye!",
			Kind:        KindExit,
		},
		Command{
			Phrase:      "goodbye",
			Description: "Exit the assistant",
			Response:    "Goodbye!",
			Kind:        KindExit,
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}
