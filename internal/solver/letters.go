package solver

import "fmt"

const alphabet = 26

// Letters is a multiset of lowercase ASCII letters.
// The zero value is the empty multiset. Letters values are comparable with ==.
type Letters struct {
	counts [alphabet]int
	n      int
}

// ParseLetters returns the multiset of letters in w, which must be a-z only.
func ParseLetters(w string) (Letters, error) {
	var l Letters
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c < 'a' || c > 'z' {
			return Letters{}, fmt.Errorf("%w: %q is not a lowercase letter", ErrInvalidSeed, c)
		}
		l.counts[c-'a']++
		l.n++
	}
	return l, nil
}

// Len returns the number of letters, counting repeats.
func (l Letters) Len() int { return l.n }

// Key returns the letters in ascending order, matching words.Key.
func (l Letters) Key() string {
	b := make([]byte, 0, l.n)
	for i, c := range l.counts {
		for j := 0; j < c; j++ {
			b = append(b, byte('a'+i))
		}
	}
	return string(b)
}

// Contains reports whether the letters of w form a sub-multiset of l.
func (l Letters) Contains(w string) bool {
	if len(w) > l.n {
		return false
	}
	var used [alphabet]int
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c < 'a' || c > 'z' {
			return false
		}
		used[c-'a']++
		if used[c-'a'] > l.counts[c-'a'] {
			return false
		}
	}
	return true
}
