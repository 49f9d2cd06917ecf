// apps/go-server/internal/scores/scores.go
//
// Leaderboard persistence.
//
// A Store keeps the best Limit scores, highest first; ties keep submission order.
// Stores are best-effort: Load never fails (it returns an empty board) and Save
// swallows errors after logging them, so a broken disk never reaches the game.
//
// Implementations:
//   - SQLite: database/sql + mattn/go-sqlite3 (production default).
//   - File:   a JSON array on disk.
//   - Memory: process-local, for tests and throwaway servers.

package scores

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// Limit is the number of entries a leaderboard keeps.
const Limit = 20

// Entry is one leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Store persists the leaderboard.
type Store interface {
	// Load returns the leaderboard, best first. It returns an empty list when
	// nothing was saved yet or the backing data cannot be read.
	Load(ctx context.Context) []Entry

	// Save records a score, keeping only the top Limit entries.
	// Failures are logged and otherwise ignored.
	Save(ctx context.Context, name string, score int)
}

// rank orders entries by score descending, preserving the order of equal
// scores, and truncates to Limit.
func rank(entries []Entry) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(entries) > Limit {
		entries = entries[:Limit]
	}
	return entries
}

// memory is an in-memory Store.
type memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory returns an empty in-memory Store.
func NewMemory() Store {
	return &memory{}
}

func (m *memory) Load(ctx context.Context) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries)
}

func (m *memory) Save(ctx context.Context, name string, score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = rank(append(m.entries, Entry{Name: name, Score: score}))
}
