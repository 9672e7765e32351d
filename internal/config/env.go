package config

import (
	"fmt"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

	"github.com/caarlos0/env/v11"
)

// Store kinds accepted by PRS_STORE.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreJSON     = "json"
	StoreMemory   = "memory"
)

// Settings are the process-level options read from the environment.
type Settings struct {
	Address           string        `env:"PRS_ADDRESS" envDefault:":8080"`
	ContentDir        string        `env:"PRS_CONTENT_DIR" envDefault:"content"`
	Store             string        `env:"PRS_STORE" envDefault:"sqlite"`
	SQLitePath        string        `env:"PRS_SQLITE_PATH" envDefault:"puzzle-raid-saga.db"`
	JSONPath          string        `env:"PRS_JSON_PATH" envDefault:"puzzle-raid-saga.json"`
	PostgresURL       string        `env:"PRS_POSTGRES_URL"`
	Namespace         string        `env:"PRS_NAMESPACE" envDefault:"default"`
	PresentationDelay time.Duration `env:"PRS_PRESENTATION_DELAY" envDefault:"300ms"`
	Difficulty        string        `env:"PRS_DIFFICULTY" envDefault:"Normal"`
	Seed              int64         `env:"PRS_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings parses Settings and checks the values the defaults cannot
// make valid on their own.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	switch s.Store {
	case StoreSQLite, StoreJSON, StoreMemory:
	case StorePostgres:
		if s.PostgresURL == "" {
			return Settings{}, fmt.Errorf("settings: PRS_POSTGRES_URL is required for store %q", s.Store)
		}
	default:
		return Settings{}, fmt.Errorf("settings: unknown store %q", s.Store)
	}
	if s.PresentationDelay < 0 {
		return Settings{}, fmt.Errorf("settings: PRS_PRESENTATION_DELAY must not be negative")
	}
	return s, nil
}

// CheckContent validates the settings that name content entries. It runs
// once content is loaded.
func (s Settings) CheckContent(cfg *game.GameConfig) error {
	if _, ok := cfg.Difficulty(s.Difficulty); !ok {
		return fmt.Errorf("settings: PRS_DIFFICULTY %q is not a known difficulty", s.Difficulty)
	}
	return nil
}
