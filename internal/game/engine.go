// apps/go-server/internal/game/engine.go
//
// Core game engine for a single Text Twist playthrough.
// Responsibilities:
//   - Hold the precomputed possible words and the letters they came from.
//   - Classify and credit guesses (correct, bonus, already found, invalid, empty).
//   - Run the countdown: time is earned by guessing and spent by Tick.
//   - Track state transitions: active → complete (every word found) or expired (time out).
//
// Notes:
//   - A Session is not safe for concurrent use; the host serializes commands.
//   - The possible words are fixed at construction. A new game is a new Session.

package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/robalobadob/texttwist/apps/go-server/internal/solver"
)

// ErrFinished is returned by Guess once the session is complete or expired.
var ErrFinished = errors.New("game finished")

// Dictionary is the word lookup used to recognize bonus words.
type Dictionary interface {
	Contains(w string) bool
}

// Session is the full mutable state of one timed playthrough.
type Session struct {
	seed     string
	letters  []byte   // display order; only Shuffle changes it
	possible []string // canonical order, immutable
	inPuzzle map[string]struct{}
	dict     Dictionary

	found     map[string]struct{}
	bonus     map[string]struct{}
	score     int
	remaining int
	status    Status

	rng *rand.Rand
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the source used to shuffle the letters.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// New starts a session for seed with its precomputed possible words.
// possible must contain seed; it is copied and put in canonical order.
func New(seed string, possible []string, dict Dictionary, opts ...Option) (*Session, error) {
	if len(seed) < solver.MinWordLength {
		return nil, fmt.Errorf("%w: %q", solver.ErrInvalidSeed, seed)
	}
	if !slices.Contains(possible, seed) {
		return nil, fmt.Errorf("%w: %q is not among the possible words", solver.ErrInvalidSeed, seed)
	}

	s := &Session{
		seed:     seed,
		letters:  []byte(seed),
		possible: slices.Clone(possible),
		inPuzzle: make(map[string]struct{}, len(possible)),
		dict:     dict,
		found:    make(map[string]struct{}),
		bonus:    make(map[string]struct{}),
		status:   Active,
	}
	solver.SortWords(s.possible)
	s.possible = slices.Compact(s.possible)
	for _, w := range s.possible {
		s.inPuzzle[w] = struct{}{}
	}
	s.remaining = max(MinInitialTime, SecondsPerWord*len(s.possible))

	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.Shuffle()
	return s, nil
}

// Guess classifies raw and credits it when it is a new correct or bonus word.
//
// Precedence: empty, already found, correct, bonus, invalid.
// A correct guess that completes the puzzle adds CompletionBonus and ends the session.
func (s *Session) Guess(raw string) (Classification, error) {
	if s.status != Active {
		return Invalid, ErrFinished
	}
	w := strings.ToLower(strings.TrimSpace(raw))
	if w == "" {
		return Empty, nil
	}
	if s.credited(w) {
		return AlreadyFound, nil
	}
	if _, ok := s.inPuzzle[w]; ok {
		s.found[w] = struct{}{}
		s.score += CorrectPointsPerLetter * len(w)
		s.remaining += CorrectSecondsPerLetter * len(w)
		if len(s.found) == len(s.possible) {
			s.score += CompletionBonus
			s.status = Complete
		}
		return Correct, nil
	}
	if s.dict != nil && s.dict.Contains(w) {
		s.bonus[w] = struct{}{}
		s.score += BonusPointsPerLetter * len(w)
		s.remaining += BonusSecondsPerLetter * len(w)
		return Bonus, nil
	}
	return Invalid, nil
}

func (s *Session) credited(w string) bool {
	if _, ok := s.found[w]; ok {
		return true
	}
	_, ok := s.bonus[w]
	return ok
}

// Tick spends elapsed whole seconds of the countdown. Reaching zero expires the
// session, however large the gap. Ticks on a finished session are ignored.
func (s *Session) Tick(elapsed int) {
	if s.status != Active || elapsed <= 0 {
		return
	}
	s.remaining = max(0, s.remaining-elapsed)
	if s.remaining == 0 {
		s.status = Expired
	}
}

// Shuffle reorders the displayed letters. It never touches scoring state.
func (s *Session) Shuffle() {
	s.rng.Shuffle(len(s.letters), func(i, j int) {
		s.letters[i], s.letters[j] = s.letters[j], s.letters[i]
	})
}

// Letters returns the letters in their current display order.
func (s *Session) Letters() string { return string(s.letters) }

// Seed returns the word the letters were drawn from.
func (s *Session) Seed() string { return s.seed }

// PossibleWords returns every word of the puzzle in canonical order.
func (s *Session) PossibleWords() []string { return slices.Clone(s.possible) }

// Found returns the credited possible words in canonical order.
func (s *Session) Found() []string { return ordered(s.found) }

// BonusFound returns the credited bonus words in canonical order.
func (s *Session) BonusFound() []string { return ordered(s.bonus) }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// TimeRemaining returns the seconds left on the countdown.
func (s *Session) TimeRemaining() int { return s.remaining }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Snapshot copies the observable state. Unfound words stay masked until the
// session ends.
func (s *Session) Snapshot() View {
	v := View{
		Letters:       s.Letters(),
		Slots:         make([]Slot, len(s.possible)),
		Found:         s.Found(),
		Bonus:         s.BonusFound(),
		Score:         s.score,
		TimeRemaining: s.remaining,
		Status:        s.status,
	}
	reveal := s.status.Terminal()
	for i, w := range s.possible {
		v.Slots[i].Length = len(w)
		if _, ok := s.found[w]; ok || reveal {
			v.Slots[i].Word = w
		}
	}
	if reveal {
		v.Seed = s.seed
	}
	return v
}

func ordered(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	solver.SortWords(out)
	return out
}
