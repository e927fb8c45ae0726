package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/config"
	"github.com/kpauljoseph/hashcards/internal/scanner"
	"github.com/kpauljoseph/hashcards/internal/store"
	"github.com/kpauljoseph/hashcards/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "hashcards",
	Short:         "Plain-text spaced repetition",
	Long:          "hashcards drills flashcards written in Markdown files and schedules reviews with FSRS.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to config file (default "+config.DefaultFileName+" if present)")
	flags.String("db", "", "path to the performance database (overrides config)")
	flags.Bool("verbose", false, "enable verbose logging")
	flags.String("log-level", "", "log level: error, info, debug or trace (overrides config)")
}

func setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultFileName)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log = logger.New(
		logger.WithPrefix("[hashcards] "),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(level),
	)
	verbose, _ := flags.GetBool("verbose")
	log.SetVerbose(verbose)
	if verbose {
		log.Debug("Verbose logging enabled")
	}

	if flags.Changed("db") {
		cfg.Database, _ = flags.GetString("db")
	}
	return nil
}

// collectionDir is the directory argument if given, else the configured one.
func collectionDir(args []string) string {
	if len(args) > 0 {
		cfg.CollectionDir = args[0]
	}
	return cfg.CollectionDir
}

func loadCards(ctx context.Context, dir string) ([]card.Card, error) {
	log.Debug("Scanning directory: %s", dir)
	cards, stats, err := scanner.New(log).LoadCollection(ctx, dir)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded %d cards from %d decks", stats.CardCount, stats.DeckCount)
	return cards, nil
}

// openCollection loads the cards under dir and opens its database.
func openCollection(ctx context.Context, dir string) ([]card.Card, *store.SQLite, error) {
	cards, err := loadCards(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cards, st, nil
}

func openStore(ctx context.Context) (*store.SQLite, error) {
	path := cfg.DatabasePath()
	log.Debug("Opening database: %s", path)
	st, err := store.OpenSQLite(ctx, path, log)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return st, nil
}

func closeStore(st *store.SQLite) {
	if err := st.Close(); err != nil {
		log.Error("Closing database: %v", err)
	}
}
