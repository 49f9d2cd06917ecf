package host

import (
	"fmt"
	"strings"
)

// Difficulty selects the length of the seed word.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// DefaultSeedLength is used when the requested difficulty has no seed words.
const DefaultSeedLength = 6

// SeedLength returns the number of letters in a seed word.
func (d Difficulty) SeedLength() int {
	switch d {
	case Easy:
		return 5
	case Hard:
		return 7
	case Expert:
		return 8
	default:
		return DefaultSeedLength
	}
}

// ParseDifficulty maps a request value to a Difficulty; "" means Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Medium, nil
	case Easy, Medium, Hard, Expert:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// Mode selects how the seed word is chosen.
type Mode string

const (
	Random Mode = "random" // uniformly among words of the right length
	Daily  Mode = "daily"  // the same word for everyone on a UTC date
)

// ParseMode maps a request value to a Mode; "" means Random.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Random, nil
	case Random, Daily:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
