// apps/go-server/internal/solver/solver.go
//
// Computes the set of dictionary words that can be spelled from a letter multiset.
//
// Strategy (Solve / SolveContext):
//   - The dictionary groups its words by sorted-letter key (anagram buckets).
//   - Every distinct sub-multiset of the letters with at least MinWordLength letters is
//     visited once; its key selects a bucket, and every word in it is spellable.
//   - At most 2^n keys are visited for n letters, fewer when letters repeat.
//
// BruteForce generates every distinct arrangement of 3..n letters and keeps the ones in
// the dictionary. It is factorial in n and exists so the two strategies can be compared.
//
// Both return words ordered by (length, word) and always include the seed.

package solver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
)

// MinWordLength is the shortest word a puzzle accepts.
const MinWordLength = 3

// checkEvery is how many bucket lookups SolveContext performs between context checks.
const checkEvery = 64

// ErrInvalidSeed reports a seed that is too short or does not match the letters.
var ErrInvalidSeed = errors.New("invalid seed")

// Dictionary is the read-only view of a word list the solver needs.
type Dictionary interface {
	// Contains reports whether w is an accepted word.
	Contains(w string) bool
	// Anagrams returns every accepted word whose sorted letters equal key.
	Anagrams(key string) []string
}

// Solve returns every dictionary word of length MinWordLength..letters.Len() whose
// letters are a sub-multiset of letters, plus seed.
func Solve(letters Letters, dict Dictionary, seed string) ([]string, error) {
	return SolveContext(context.Background(), letters, dict, seed)
}

// SolveContext is Solve with cooperative cancellation. When ctx ends first it returns
// ctx.Err() and no words.
func SolveContext(ctx context.Context, letters Letters, dict Dictionary, seed string) ([]string, error) {
	if err := validate(letters, seed); err != nil {
		return nil, err
	}

	found := map[string]struct{}{seed: {}}
	buf := make([]byte, 0, letters.Len())
	lookups := 0

	var walk func(i int) error
	walk = func(i int) error {
		if i == alphabet {
			if len(buf) < MinWordLength {
				return nil
			}
			lookups++
			if lookups%checkEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			for _, w := range dict.Anagrams(string(buf)) {
				found[w] = struct{}{}
			}
			return nil
		}
		base := len(buf)
		for c := 0; c <= letters.counts[i]; c++ {
			if c > 0 {
				buf = append(buf, byte('a'+i))
			}
			if err := walk(i + 1); err != nil {
				return err
			}
		}
		buf = buf[:base]
		return nil
	}

	if err := walk(0); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sorted(found), nil
}

// BruteForce computes the same result as Solve by testing every distinct
// arrangement of the letters against the dictionary.
func BruteForce(letters Letters, dict Dictionary, seed string) ([]string, error) {
	if err := validate(letters, seed); err != nil {
		return nil, err
	}

	found := map[string]struct{}{seed: {}}
	remaining := letters.counts
	buf := make([]byte, 0, letters.Len())

	var arrange func(size int)
	arrange = func(size int) {
		if len(buf) == size {
			if w := string(buf); dict.Contains(w) {
				found[w] = struct{}{}
			}
			return
		}
		for i := 0; i < alphabet; i++ {
			if remaining[i] == 0 {
				continue
			}
			remaining[i]--
			buf = append(buf, byte('a'+i))
			arrange(size)
			buf = buf[:len(buf)-1]
			remaining[i]++
		}
	}

	for size := MinWordLength; size <= letters.Len(); size++ {
		arrange(size)
	}
	return sorted(found), nil
}

func validate(letters Letters, seed string) error {
	if len(seed) < MinWordLength {
		return fmt.Errorf("%w: %q is shorter than %d letters", ErrInvalidSeed, seed, MinWordLength)
	}
	sl, err := ParseLetters(seed)
	if err != nil {
		return err
	}
	if sl != letters {
		return fmt.Errorf("%w: %q does not use exactly the letters %q", ErrInvalidSeed, seed, letters.Key())
	}
	return nil
}

// sorted returns the set's words ordered by length, then lexicographically.
func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	SortWords(out)
	return out
}

// SortWords orders ws by (length, word) in place.
func SortWords(ws []string) {
	slices.SortFunc(ws, func(a, b string) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
