package platform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"
)

// Runner executes external commands one at a time with a default timeout.
// Success and failure are resolved from the process exit status.
type Runner struct {
	mu             sync.Mutex
	defaultTimeout time.Duration
}

// NewRunner creates a runner. A non-positive timeout falls back to 10s.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{defaultTimeout: timeout}
}

// Run executes the command and waits for it to exit. A nonzero exit status
// is returned as an error with stderr attached.
func (r *Runner) Run(ctx context.Context, cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.defaultTimeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr

	err := c.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("command %q timed out after %v", cmd.Name, r.defaultTimeout)
	}
	if err != nil {
		if s := stderr.String(); s != "" {
			return fmt.Errorf("command %q failed: %w: %s", cmd.Name, err, s)
		}
		return fmt.Errorf("command %q failed: %w", cmd.Name, err)
	}
	return nil
}

// Start launches the command without waiting for it to exit. Used for
// actions that open long-lived programs (browser, terminal).
func (r *Runner) Start(cmd Command) error {
	c := exec.Command(cmd.Name, cmd.Args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("command %q failed to start: %w", cmd.Name, err)
	}
	// Reap the child in the background so it doesn't linger as a zombie.
	go func() { _ = c.Wait() }()
	return nil
}
