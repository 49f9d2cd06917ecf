// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Text Twist backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", "/leaderboard", POST /game/new.
//   - Game endpoints under /game/{id}, gated by the game token issued at creation.
//   - Daily puzzle endpoint: mounted under /daily.
//
// Notes:
//   - A game token is an HS256 JWT whose "gid" claim names the one game it may drive.
//   - Request contexts carry the handler timeout; commands that wait on a
//     background solve give up when it fires.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/texttwist/apps/go-server/internal/game"
	"github.com/robalobadob/texttwist/apps/go-server/internal/host"
	"github.com/robalobadob/texttwist/apps/go-server/internal/scores"
	"github.com/robalobadob/texttwist/apps/go-server/internal/store"
)

// Dictionary is the word list the server hands to new games.
type Dictionary interface {
	host.Dictionary
	Len() int
	Stats() map[int]int
}

// Options configures a Server.
type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	ClientOrigin   string
	DailySalt      string
	HandlerTimeout time.Duration // defaults to 10s
}

// Server bundles the router, live games, dictionary, and leaderboard.
type Server struct {
	r      *chi.Mux
	games  store.Store
	dict   Dictionary
	scores scores.Store
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(games store.Store, dict Dictionary, board scores.Store, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), games: games, dict: dict, scores: board, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                     // add X-Request-ID
	s.r.Use(chimw.RealIP)                        // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                     // recover from panics
	s.r.Use(chimw.Timeout(opts.HandlerTimeout)) // bound handler time
	s.r.Use(jsonContentType)                     // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))             // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"texttwist-go","endpoints":["/health","/leaderboard","POST /game/new","POST /daily/new","/game/{id}/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"words":    s.dict.Len(),
			"byLength": s.dict.Stats(),
			"games":    s.games.Len(),
		})
	})

	s.r.Get("/leaderboard", s.handleLeaderboard)
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGame)
		r.Get("/", s.handleState)
		r.Delete("/", s.handleDelete)
		r.Post("/guess", s.handleGuess)
		r.Post("/shuffle", s.handleShuffle)
		r.Post("/new", s.handleRestart)
		r.Post("/score", s.handleScore)
	})
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ctxHostKey is the context key type for the game resolved by requireGame.
type ctxHostKey struct{}

// requireGame checks the bearer token against the {id} URL parameter and
// injects the game's host into the request context.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := bearer(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		gid, err := s.parseToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if gid != id {
			writeError(w, http.StatusForbidden, "wrong_game")
			return
		}
		h, err := s.games.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxHostKey{}, h)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func hostFrom(r *http.Request) *host.Host {
	h, _ := r.Context().Value(ctxHostKey{}).(*host.Host)
	return h
}

// ------------------------------ GAME ---------------------------------------

// newGameReq is the body of POST /game/new and POST /game/{id}/new. Both fields are optional.
type newGameReq struct {
	Difficulty string `json:"difficulty"` // easy | medium | hard | expert
	Mode       string `json:"mode"`       // random | daily
}

type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleNewGame creates a game slot, starts solving its puzzle, and issues its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	d, m, ok := decodeNewGame(w, r)
	if !ok {
		return
	}
	res, err := s.startGame(r.Context(), d, m)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// startGame creates, starts, registers, and signs a new game.
func (s *Server) startGame(ctx context.Context, d host.Difficulty, m host.Mode) (newGameRes, error) {
	h := host.New(s.dict, s.scores, host.Options{DailySalt: s.opts.DailySalt})
	if err := h.NewGame(ctx, d, m); err != nil {
		return newGameRes{}, err
	}
	if err := s.games.Save(ctx, h); err != nil {
		h.Close()
		return newGameRes{}, fmt.Errorf("save game: %w", err)
	}
	tok, exp, err := s.signToken(h.ID)
	if err != nil {
		_ = s.games.Delete(ctx, h.ID)
		return newGameRes{}, fmt.Errorf("sign token: %w", err)
	}
	return newGameRes{GameID: h.ID, Token: tok, ExpiresAt: exp}, nil
}

// decodeNewGame reads an optional newGameReq body. It writes the error response itself.
func decodeNewGame(w http.ResponseWriter, r *http.Request) (host.Difficulty, host.Mode, bool) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad_json")
			return "", "", false
		}
	}
	d, err := host.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
		return "", "", false
	}
	m, err := host.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return "", "", false
	}
	return d, m, true
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	v, err := hostFrom(r).State(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleRestart replaces the game in this slot with a new puzzle.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	d, m, ok := decodeNewGame(w, r)
	if !ok {
		return
	}
	h := hostFrom(r)
	if err := h.NewGame(r.Context(), d, m); err != nil {
		s.writeCommandError(w, err)
		return
	}
	v, err := h.State(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type guessReq struct {
	Word string `json:"word"`
}

type guessRes struct {
	Result game.Classification `json:"result"`
	View   game.View           `json:"view"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	c, v, err := hostFrom(r).Guess(r.Context(), req.Word)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Result: c, View: v})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	v, err := hostFrom(r).Shuffle(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type scoreReq struct {
	Name string `json:"name"`
}

// handleScore records the final score of a finished game on the leaderboard.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := hostFrom(r).SubmitScore(r.Context(), req.Name); err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"ok": true})
}

type leaderboardRes struct {
	Top []scores.Entry `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, leaderboardRes{Top: s.scores.Load(r.Context())})
}

// writeCommandError maps domain errors to HTTP statuses.
func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_finished")
	case errors.Is(err, host.ErrNotFinished):
		writeError(w, http.StatusConflict, "game_not_finished")
	case errors.Is(err, host.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, "already_submitted")
	case errors.Is(err, host.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "invalid_name")
	case errors.Is(err, host.ErrNoSeed):
		writeError(w, http.StatusUnprocessableEntity, "no_seed")
	case errors.Is(err, host.ErrNoGame):
		writeError(w, http.StatusConflict, "no_game")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "solving")
	default:
		log.Error().Err(err).Msg("game command failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// ------------------------------ tokens -------------------------------------

// signToken creates an HS256 JWT that authorizes requests for game gid.
func (s *Server) signToken(gid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseToken validates tok and returns its game ID.
func (s *Server) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errors.New("token has no game")
	}
	return gid, nil
}

// bearer extracts the token from an "Authorization: Bearer <token>" header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
