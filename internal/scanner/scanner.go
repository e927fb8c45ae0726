package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/parser"
	"github.com/kpauljoseph/hashcards/pkg/logger"
)

const (
	DeckExtension      = parser.DeckExtension
	maxConcurrentReads = 8
)

var ErrNoDecks = errors.New("no deck files found")

type DeckFile struct {
	AbsolutePath string
	RelativePath string
}

type Stats struct {
	DeckCount int
	CardCount int
}

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		logger: logger,
	}
}

// FindDecks walks dir for deck files, skipping hidden directories.
func (s *DirectoryScanner) FindDecks(ctx context.Context, dir string) ([]DeckFile, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	var decks []DeckFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				s.logger.Trace("Skipping hidden directory: %s", path)
				return filepath.SkipDir
			}
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if filepath.Ext(path) != DeckExtension {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
		decks = append(decks, DeckFile{AbsolutePath: path, RelativePath: relPath})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(decks) == 0 {
		return nil, fmt.Errorf("%w in %s or its subdirectories", ErrNoDecks, dir)
	}
	return decks, nil
}

// ReadDecks loads the text of every deck, labelled by its relative path. The
// result keeps the order of decks.
func (s *DirectoryScanner) ReadDecks(ctx context.Context, decks []DeckFile) ([]parser.File, error) {
	files := make([]parser.File, len(decks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, deck := range decks {
		i, deck := i, deck
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(deck.AbsolutePath)
			if err != nil {
				return fmt.Errorf("read deck %s: %w", deck.RelativePath, err)
			}
			s.logger.Trace("Read %s (%d bytes)", deck.RelativePath, len(data))
			files[i] = parser.File{Path: deck.RelativePath, Text: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// LoadCollection finds, reads and parses every deck under dir.
func (s *DirectoryScanner) LoadCollection(ctx context.Context, dir string) ([]card.Card, Stats, error) {
	var stats Stats

	decks, err := s.FindDecks(ctx, dir)
	if err != nil {
		return nil, stats, err
	}
	stats.DeckCount = len(decks)

	files, err := s.ReadDecks(ctx, decks)
	if err != nil {
		return nil, stats, err
	}

	cards, err := parser.ParseMany(files)
	if err != nil {
		return nil, stats, err
	}
	stats.CardCount = len(cards)

	s.logger.Debug("Loaded %d cards from %d decks in %s", stats.CardCount, stats.DeckCount, dir)
	return cards, stats, nil
}
