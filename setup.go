package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/editor"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/config"
)

// setupFlow interactively collects the voice settings and writes the config
// file.
func setupFlow(in io.Reader, out io.Writer, path string, cfg config.Config) error {
	r := bufio.NewReader(in)

	fmt.Fprintln(out, paragraph(fmt.Sprintf("\nLet's set up %s.", keyword("voice-cli"))))

	answer, err := ask(r, out, "Enable voice responses? [y/N] ")
	if err != nil {
		return err
	}
	cfg.Voice.Enabled = strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")

	if cfg.Voice.Enabled {
		key, err := ask(r, out, "ElevenLabs API key (blank to keep current): ")
		if err != nil {
			return err
		}
		if key != "" {
			cfg.Voice.APIKey = key
		}

		voiceID, err := ask(r, out, fmt.Sprintf("Voice ID [%s]: ", cfg.Voice.VoiceID))
		if err != nil {
			return err
		}
		if voiceID != "" {
			cfg.Voice.VoiceID = voiceID
		}

		if !cfg.HasVoiceCredential() {
			fmt.Fprintln(out, "No API key set; responses will stay text-only until one is configured.")
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(out, "Wrote config file to:", path)
	return nil
}

func ask(r *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", fmt.Errorf("unable to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// editConfigFile opens the config file in the user's editor, creating it
// with the current settings first if it doesn't exist yet.
func editConfigFile(path string, cfg config.Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(path, cfg); err != nil {
			return err
		}
	}

	c, err := editor.Cmd("voice-cli", path)
	if err != nil {
		return fmt.Errorf("unable to resolve editor: %w", err)
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("unable to run editor: %w", err)
	}

	fmt.Println("Wrote config file to:", path)
	return nil
}
