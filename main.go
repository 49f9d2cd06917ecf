// apps/go-server/main.go
//
// Entry point for the Text Twist Go server.
// Responsibilities:
//   - Load .env and environment configuration.
//   - Load the dictionary (WORDS_FILE or the embedded list).
//   - Open the leaderboard backend (SQLite, JSON file, or memory).
//   - Start the HTTP server.

package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/texttwist/apps/go-server/assets"
	"github.com/robalobadob/texttwist/apps/go-server/internal/config"
	"github.com/robalobadob/texttwist/apps/go-server/internal/httpserver"
	"github.com/robalobadob/texttwist/apps/go-server/internal/scores"
	"github.com/robalobadob/texttwist/apps/go-server/internal/store"
	"github.com/robalobadob/texttwist/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", dict.Len()).Str("file", cfg.WordsFile).Msg("dictionary loaded")

	board, closeBoard, err := openScores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open leaderboard")
	}
	defer closeBoard()

	srv := httpserver.New(store.NewMemoryStore(), dict, board, httpserver.Options{
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		ClientOrigin: cfg.ClientOrigin,
		DailySalt:    cfg.DailySalt,
	})
	log.Info().Str("port", cfg.Port).Str("scores", cfg.ScoresBackend).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openScores builds the configured leaderboard store and its cleanup func.
func openScores(cfg config.Config) (scores.Store, func(), error) {
	switch cfg.ScoresBackend {
	case config.BackendSQLite:
		db, err := scores.OpenDB(cfg.ScoresPath)
		if err != nil {
			return nil, nil, err
		}
		if err := scores.Migrate(db, assets.Migrations()); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return scores.NewSQLite(db), func() { _ = db.Close() }, nil
	case config.BackendFile:
		return scores.NewFile(cfg.ScoresPath), func() {}, nil
	default:
		return scores.NewMemory(), func() {}, nil
	}
}
