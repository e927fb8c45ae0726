package parser

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/hash"
)

// File is one deck file of a collection.
type File struct {
	Path string
	Text string
}

// DeckExtension is the suffix of deck files.
const DeckExtension = ".md"

// DeckName returns the default deck name for a path: its base name with the
// deck extension removed. Other dots are kept.
func DeckName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), DeckExtension)
}

// ParseFile applies the file's header, then parses the body.
func ParseFile(f File) ([]card.Card, error) {
	meta, body, err := SplitFrontmatter(f.Path, f.Text)
	if err != nil {
		return nil, err
	}
	name := meta.Name
	if name == "" {
		name = DeckName(f.Path)
	}
	return New(name, f.Path).Parse(body)
}

// ParseMany parses every file and returns the combined cards sorted by hash,
// with cards that appear in several files kept once.
func ParseMany(files []File) ([]card.Card, error) {
	var all []card.Card
	for _, f := range files {
		cards, err := ParseFile(f)
		if err != nil {
			return nil, err
		}
		all = append(all, cards...)
	}

	slices.SortStableFunc(all, func(a, b card.Card) int {
		return a.Hash().Compare(b.Hash())
	})
	return lo.UniqBy(all, func(c card.Card) hash.Hash { return c.Hash() }), nil
}
