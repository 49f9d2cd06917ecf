package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// file is a Store backed by a JSON array on disk.
type file struct {
	mu   sync.Mutex // serializes read-modify-write in Save
	path string
}

// NewFile returns a Store that keeps the leaderboard in the JSON file at path.
// The file and its directory are created on the first Save.
func NewFile(path string) Store {
	return &file{path: path}
}

func (f *file) Load(ctx context.Context) []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, err := f.read()
	if err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("load leaderboard")
		return []Entry{}
	}
	return entries
}

func (f *file) Save(ctx context.Context, name string, score int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		// Unreadable data is replaced rather than blocking every future save.
		log.Warn().Err(err).Str("path", f.path).Msg("discarding unreadable leaderboard")
		entries = nil
	}
	entries = rank(append(entries, Entry{Name: name, Score: score}))
	if err := f.write(entries); err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("save leaderboard")
	}
}

// read returns the stored entries; a missing file is an empty leaderboard.
func (f *file) read() ([]Entry, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return rank(entries), nil
}

// write replaces the file atomically via a temp file in the same directory.
func (f *file) write(entries []Entry) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
