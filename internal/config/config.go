// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName = "hashcards.yaml"
	DefaultDatabase = "hashcards.db"
)

type Config struct {
	CollectionDir string `yaml:"collection_dir"`
	Database      string `yaml:"database"`
	LogLevel      string `yaml:"log_level"`
	Drill         Drill  `yaml:"drill"`
}

// Drill holds session defaults. Nil limits mean no limit.
type Drill struct {
	CardLimit      *int   `yaml:"card_limit"`
	NewCardLimit   *int   `yaml:"new_card_limit"`
	Deck           string `yaml:"deck"`
	BurySiblings   bool   `yaml:"bury_siblings"`
	Shuffle        bool   `yaml:"shuffle"`
	AnswerControls string `yaml:"answer_controls"`
}

func Default() *Config {
	return &Config{
		CollectionDir: ".",
		Database:      DefaultDatabase,
		LogLevel:      "info",
		Drill: Drill{
			BurySiblings:   true,
			Shuffle:        true,
			AnswerControls: "full",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.CollectionDir == "" {
		cfg.CollectionDir = "."
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Drill.AnswerControls == "" {
		cfg.Drill.AnswerControls = "full"
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// DatabasePath resolves the database against the collection directory
// unless it is absolute.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.CollectionDir, c.Database)
}

func (c *Config) validate() error {
	if c.Drill.CardLimit != nil && *c.Drill.CardLimit < 0 {
		return fmt.Errorf("drill.card_limit must not be negative, got %d", *c.Drill.CardLimit)
	}
	if c.Drill.NewCardLimit != nil && *c.Drill.NewCardLimit < 0 {
		return fmt.Errorf("drill.new_card_limit must not be negative, got %d", *c.Drill.NewCardLimit)
	}
	switch c.Drill.AnswerControls {
	case "full", "binary":
	default:
		return fmt.Errorf("drill.answer_controls must be full or binary, got %q", c.Drill.AnswerControls)
	}
	return nil
}
