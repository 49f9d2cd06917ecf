// apps/go-server/internal/host/host.go
//
// Host owns one game slot and drives its Session.
// Responsibilities:
//   - Choose a seed word for the requested difficulty (random or daily), falling
//     back to DefaultSeedLength when no word of that length exists.
//   - Solve the puzzle in the background; commands wait until the words are ready.
//   - Cancel a solve that a newer NewGame supersedes; its result is discarded.
//   - Serialize commands so no two run against the session at once.
//   - Feed the session elapsed whole seconds from a monotonic clock before each command.
//   - Hand the final score to the leaderboard exactly once, after the game ends.

package host

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/texttwist/apps/go-server/internal/game"
	"github.com/robalobadob/texttwist/apps/go-server/internal/scores"
	"github.com/robalobadob/texttwist/apps/go-server/internal/solver"
)

var (
	ErrNoSeed            = errors.New("no seed word available")
	ErrNoGame            = errors.New("no game started")
	ErrNotFinished       = errors.New("game not finished")
	ErrAlreadySubmitted  = errors.New("score already submitted")
	ErrInvalidName       = errors.New("invalid name")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownMode       = errors.New("unknown mode")
)

// MaxNameLength bounds leaderboard names, in characters.
const MaxNameLength = 24

// Dictionary is what a Host needs from the word list.
type Dictionary interface {
	solver.Dictionary
	RandomWord(n int, r *rand.Rand) string
	DailyWord(n int, t time.Time, salt string) string
}

// Options tune a Host. Zero values select production defaults.
type Options struct {
	DailySalt string           // salt for Daily seeds
	Rand      *rand.Rand       // seed picks and letter shuffles
	Now       func() time.Time // clock; defaults to time.Now
}

// Host is one game slot. It is safe for concurrent use.
type Host struct {
	ID string

	dict   Dictionary
	scores scores.Store
	salt   string
	now    func() time.Time

	mu         sync.Mutex // serializes commands; guards everything below
	rng        *rand.Rand
	session    *game.Session
	clock      *game.Clock
	difficulty Difficulty
	mode       Mode
	submitted  bool
	gen        int                // bumped by NewGame; stale solves compare against it
	ready      chan struct{}      // closed when the current solve finishes
	cancel     context.CancelFunc // cancels the current solve
	solveErr   error

	wg sync.WaitGroup // running solves
}

// New returns an idle Host; call NewGame to start playing.
func New(dict Dictionary, st scores.Store, opts Options) *Host {
	h := &Host{
		ID:     uuid.NewString(),
		dict:   dict,
		scores: st,
		salt:   opts.DailySalt,
		now:    opts.Now,
		rng:    opts.Rand,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return h
}

// NewGame replaces the current game with a fresh one. Seed selection happens
// immediately; solving runs in the background. Any unfinished solve is cancelled.
func (h *Host) NewGame(ctx context.Context, d Difficulty, m Mode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	seed, err := h.pickSeed(d, m)
	if err != nil {
		return err
	}
	letters, err := solver.ParseLetters(seed)
	if err != nil {
		return err
	}

	if h.cancel != nil {
		h.cancel()
	}
	solveCtx, cancel := context.WithCancel(context.Background())
	h.gen++
	gen := h.gen
	ready := make(chan struct{})

	h.session, h.clock, h.solveErr = nil, nil, nil
	h.difficulty, h.mode, h.submitted = d, m, false
	h.ready, h.cancel = ready, cancel
	shuffle := rand.New(rand.NewPCG(h.rng.Uint64(), h.rng.Uint64()))

	log.Info().Str("gameId", h.ID).Str("difficulty", string(d)).Str("mode", string(m)).
		Int("letters", letters.Len()).Msg("new game")

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		start := time.Now()
		possible, err := solver.SolveContext(solveCtx, letters, h.dict, seed)
		var s *game.Session
		if err == nil {
			s, err = game.New(seed, possible, h.dict, game.WithRand(shuffle))
		}

		h.mu.Lock()
		defer h.mu.Unlock()
		defer close(ready)
		if gen != h.gen {
			log.Debug().Str("gameId", h.ID).Err(err).Msg("discarding superseded solve")
			return
		}
		h.cancel = nil
		cancel()
		if err != nil {
			h.solveErr = err
			if !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Str("gameId", h.ID).Msg("solve failed")
			}
			return
		}
		h.session = s
		h.clock = game.NewClock(h.now())
		log.Debug().Str("gameId", h.ID).Int("words", len(possible)).
			Dur("took", time.Since(start)).Msg("puzzle solved")
	}()
	return nil
}

// pickSeed returns a seed word for d, falling back to DefaultSeedLength.
func (h *Host) pickSeed(d Difficulty, m Mode) (string, error) {
	lengths := []int{d.SeedLength()}
	if lengths[0] != DefaultSeedLength {
		lengths = append(lengths, DefaultSeedLength)
	}
	for _, n := range lengths {
		var w string
		if m == Daily {
			w = h.dict.DailyWord(n, h.now(), h.salt)
		} else {
			w = h.dict.RandomWord(n, h.rng)
		}
		if w != "" {
			if n != lengths[0] {
				log.Warn().Int("wanted", lengths[0]).Int("using", n).Msg("no seed of requested length")
			}
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: difficulty %s", ErrNoSeed, d)
}

// acquire waits for the current puzzle, locks the host, and brings the timer up
// to date. On success the caller must call h.mu.Unlock.
func (h *Host) acquire(ctx context.Context) (*game.Session, error) {
	for {
		h.mu.Lock()
		if h.session != nil {
			h.session.Tick(h.clock.Elapsed(h.now()))
			return h.session, nil
		}
		err, ready := h.solveErr, h.ready
		h.mu.Unlock()

		if err != nil {
			return nil, err
		}
		if ready == nil {
			return nil, ErrNoGame
		}
		select {
		case <-ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Guess submits a word. It blocks until the puzzle is solved or ctx ends.
func (h *Host) Guess(ctx context.Context, raw string) (game.Classification, game.View, error) {
	s, err := h.acquire(ctx)
	if err != nil {
		return game.Invalid, game.View{}, err
	}
	defer h.mu.Unlock()

	c, err := s.Guess(raw)
	v := s.Snapshot()
	if err != nil {
		return c, v, err
	}
	ev := log.Debug().Str("gameId", h.ID).Str("result", string(c)).Int("score", v.Score)
	if v.Status == game.Complete {
		ev = log.Info().Str("gameId", h.ID).Int("score", v.Score)
	}
	ev.Msg("guess")
	return c, v, nil
}

// Shuffle reorders the displayed letters.
func (h *Host) Shuffle(ctx context.Context) (game.View, error) {
	s, err := h.acquire(ctx)
	if err != nil {
		return game.View{}, err
	}
	defer h.mu.Unlock()
	s.Shuffle()
	return s.Snapshot(), nil
}

// State returns the current view after applying elapsed time.
func (h *Host) State(ctx context.Context) (game.View, error) {
	s, err := h.acquire(ctx)
	if err != nil {
		return game.View{}, err
	}
	defer h.mu.Unlock()
	return s.Snapshot(), nil
}

// Settings reports the difficulty and mode of the current game.
func (h *Host) Settings() (Difficulty, Mode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.difficulty, h.mode
}

// SubmitScore records the final score under name. It is allowed once per game,
// only after the game is complete or expired. Persistence problems are logged
// by the store and never returned.
func (h *Host) SubmitScore(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}

	s, err := h.acquire(ctx)
	if err != nil {
		return err
	}
	if !s.Status().Terminal() {
		h.mu.Unlock()
		return ErrNotFinished
	}
	if h.submitted {
		h.mu.Unlock()
		return ErrAlreadySubmitted
	}
	h.submitted = true
	score := s.Score()
	h.mu.Unlock()

	h.scores.Save(ctx, name, score)
	log.Info().Str("gameId", h.ID).Str("name", name).Int("score", score).Msg("score submitted")
	return nil
}

// Leaderboard returns the stored top scores.
func (h *Host) Leaderboard(ctx context.Context) []scores.Entry {
	return h.scores.Load(ctx)
}

// Close cancels any solve in flight and waits for it to return.
func (h *Host) Close() {
	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.mu.Unlock()
	h.wg.Wait()
}

// cleanName trims name and checks it is 1-MaxNameLength printable characters.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: must be 1-%d characters", ErrInvalidName, MaxNameLength)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w: contains unprintable characters", ErrInvalidName)
		}
	}
	return name, nil
}
