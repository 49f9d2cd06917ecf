// apps/go-server/internal/words/words.go
//
// Provides the dictionary used by the solver and the game engine.
//
// Responsibilities:
//   - Load a newline-delimited word list from a file or fall back to the embedded default.
//   - Normalize entries (trim, lowercase, dedupe) and drop anything outside a-z.
//   - Index words by length (seed selection) and by sorted-letter key (anagram buckets).
//
// A Dictionary is immutable once built and safe for concurrent readers.
//
// Environment:
//   WORDS_FILE=/path/to/words.txt (read by config, passed to Load)

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/robalobadob/texttwist/apps/go-server/assets"
)

// Dictionary is an immutable set of accepted lowercase words.
type Dictionary struct {
	set   map[string]struct{} // every accepted word
	byKey map[string][]string // sorted-letter key -> words, each bucket sorted
	byLen map[int][]string    // length -> words, sorted
}

// New builds a Dictionary from raw entries. Entries are trimmed and lowercased;
// blank lines, "#" comments, and words with characters outside a-z are dropped.
func New(list []string) *Dictionary {
	d := &Dictionary{
		set:   make(map[string]struct{}, len(list)),
		byKey: make(map[string][]string),
		byLen: make(map[int][]string),
	}
	for _, raw := range list {
		w := Normalize(raw)
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		k := Key(w)
		d.byKey[k] = append(d.byKey[k], w)
		d.byLen[len(w)] = append(d.byLen[len(w)], w)
	}
	for _, b := range d.byKey {
		slices.Sort(b)
	}
	for _, b := range d.byLen {
		slices.Sort(b)
	}
	return d
}

// Load reads a dictionary from path, or from the embedded word list when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return New(strings.Split(assets.Words, "\n")), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	list, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return New(list), nil
}

// readLines returns every line of r, unprocessed.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Contains reports whether w is an accepted word. w must already be normalized.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[w]
	return ok
}

// Anagrams returns the words whose sorted letters equal key.
// The returned slice is shared and must not be modified.
func (d *Dictionary) Anagrams(key string) []string {
	return d.byKey[key]
}

// OfLength returns the words with exactly n letters, sorted.
// The returned slice is shared and must not be modified.
func (d *Dictionary) OfLength(n int) []string {
	return d.byLen[n]
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.set) }

// Stats returns word counts keyed by length.
func (d *Dictionary) Stats() map[int]int {
	out := make(map[int]int, len(d.byLen))
	for n, b := range d.byLen {
		out[n] = len(b)
	}
	return out
}

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Key returns the letters of w in ascending order ("tea" -> "aet").
// Two words are anagrams exactly when their keys are equal.
func Key(w string) string {
	b := []byte(w)
	slices.Sort(b)
	return string(b)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
