package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog configures logging. By default only warnings reach stderr; set
// VOICE_LOG to a file path to capture everything there, and VOICE_DEBUG=1
// (or --debug) for debug level.
func setupLog() (func() error, error) {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	if os.Getenv("VOICE_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	path := os.Getenv("VOICE_LOG")
	if path == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(log.InfoLevel)
	if os.Getenv("VOICE_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
	return f.Close, nil
}
