package voice

import (
	"context"
	"sync"
)

// MockPlayer implements Player for testing. It records played paths without
// producing sound.
type MockPlayer struct {
	mu     sync.Mutex
	played []string
	// Err is returned from every Play call when set.
	Err error
}

// Play records the path and returns the configured error.
func (m *MockPlayer) Play(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.played = append(m.played, path)
	return nil
}

// Played returns a copy of the paths played so far.
func (m *MockPlayer) Played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.played))
	copy(out, m.played)
	return out
}
