// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Scores backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config is the server configuration.
type Config struct {
	Port          string        `env:"PORT"           envDefault:"5175"`
	LogLevel      string        `env:"LOG_LEVEL"      envDefault:"info"`
	WordsFile     string        `env:"WORDS_FILE"`
	ScoresBackend string        `env:"SCORES_BACKEND" envDefault:"sqlite"`
	ScoresPath    string        `env:"SCORES_PATH"    envDefault:"./data/scores.db"`
	JWTSecret     string        `env:"JWT_SECRET"     envDefault:"dev_secret_change_me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"      envDefault:"24h"`
	ClientOrigin  string        `env:"CLIENT_ORIGIN"  envDefault:"http://localhost:5173"`
	DailySalt     string        `env:"DAILY_SALT"     envDefault:"local_dev_salt"`
}

// FromEnv parses the environment into a Config.
func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch c.ScoresBackend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return Config{}, fmt.Errorf("SCORES_BACKEND: unknown backend %q", c.ScoresBackend)
	}
	if c.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL: must be positive, got %s", c.TokenTTL)
	}
	return c, nil
}
