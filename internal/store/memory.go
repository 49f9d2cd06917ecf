// apps/go-server/internal/store/memory.go
//
// In-memory registry of live game hosts, keyed by host ID.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; only the leaderboard is durable.
//   - Delete closes the host so an unfinished solve does not outlive its game.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/texttwist/apps/go-server/internal/host"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store holds live games.
type Store interface {
	// Save adds or replaces a host under its ID.
	Save(ctx context.Context, h *host.Host) error

	// Get retrieves a host by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*host.Host, error)

	// Delete closes and removes a host, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Len returns the number of live games.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards hosts
	hosts map[string]*host.Host // keyed by Host.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{hosts: make(map[string]*host.Host)}
}

func (m *memory) Save(ctx context.Context, h *host.Host) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hosts[h.ID] = h
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*host.Host, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.hosts[id]; ok {
		return h, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	h, ok := m.hosts[id]
	delete(m.hosts, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	h.Close()
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hosts)
}
