// apps/go-server/internal/game/types.go
//
// Core type definitions for the Text Twist session engine.
// Defines:
//   - Classification: outcome of a single guess.
//   - Status: lifecycle of a session (active → complete | expired).
//   - View: the observable state handed to the presentation layer.

package game

// Classification is the result of submitting one guess.
//   - "empty":         nothing was typed.
//   - "already_found": the word was credited earlier in this session.
//   - "correct":       the word is one of the puzzle's possible words.
//   - "bonus":         a dictionary word outside the possible words.
//   - "invalid":       not a dictionary word.
type Classification string

const (
	Empty        Classification = "empty"
	AlreadyFound Classification = "already_found"
	Correct      Classification = "correct"
	Bonus        Classification = "bonus"
	Invalid      Classification = "invalid"
)

// Status is the lifecycle state of a session. Complete and Expired are terminal.
type Status string

const (
	Active   Status = "active"
	Complete Status = "complete"
	Expired  Status = "expired"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool { return s == Complete || s == Expired }

// Scoring and timing rules.
const (
	CorrectPointsPerLetter  = 10
	CorrectSecondsPerLetter = 2
	BonusPointsPerLetter    = 5
	BonusSecondsPerLetter   = 1
	CompletionBonus         = 100

	SecondsPerWord = 9  // initial time per possible word
	MinInitialTime = 10 // floor for the initial time
)

// Slot is one possible word as shown to the player: its length always, the word
// itself only once found or after the session ends.
type Slot struct {
	Length int    `json:"length"`
	Word   string `json:"word,omitempty"`
}

// View is a copy of a session's observable state.
type View struct {
	Letters       string   `json:"letters"`
	Slots         []Slot   `json:"slots"`
	Found         []string `json:"found"`
	Bonus         []string `json:"bonus"`
	Score         int      `json:"score"`
	TimeRemaining int      `json:"timeRemaining"`
	Status        Status   `json:"status"`
	Seed          string   `json:"seed,omitempty"` // revealed once terminal
}
