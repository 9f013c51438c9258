package presence

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRegistry is an in-process Registry for development and tests. It is
// not shared across gateway instances; production deployments use Redis.
type MemoryRegistry struct {
	mu     sync.RWMutex
	online map[string]struct{}
}

// NewMemory constructs an empty in-memory registry.
func NewMemory() *MemoryRegistry {
	return &MemoryRegistry{online: make(map[string]struct{})}
}

func (m *MemoryRegistry) MarkOnline(_ context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("presence: username is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online[username] = struct{}{}
	return nil
}

func (m *MemoryRegistry) MarkOffline(_ context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("presence: username is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.online, username)
	return nil
}

func (m *MemoryRegistry) ListOnline(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	usernames := make([]string, 0, len(m.online))
	for u := range m.online {
		usernames = append(usernames, u)
	}
	sort.Strings(usernames)
	return usernames, nil
}
