// Package stats summarizes a collection against its performance records.
package stats

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
)

type PerformanceReader interface {
	Get(ctx context.Context, h hash.Hash) (performance.Performance, error)
}

// HashLister enumerates every card with a stored record.
type HashLister interface {
	Hashes(ctx context.Context) ([]hash.Hash, error)
}

type DeckStats struct {
	Name  string `json:"name"`
	Cards int    `json:"cards"`
	New   int    `json:"new"`
	Due   int    `json:"due"`
}

type Stats struct {
	Date              datetime.Date `json:"date"`
	CollectionSize    int           `json:"collection_size"`
	NewCards          int           `json:"new_cards"`
	DueToday          int           `json:"due_today"`
	ReviewedCards     int           `json:"reviewed_cards"`
	TotalReviews      int           `json:"total_reviews"`
	AverageStability  float64       `json:"average_stability"`
	AverageDifficulty float64       `json:"average_difficulty"`
	DeckNames         []string      `json:"deck_names"`
	Decks             []DeckStats   `json:"decks"`
}

// Compute reports the state of cards on the given day. A card with no record
// counts as new.
func Compute(ctx context.Context, cards []card.Card, perf PerformanceReader, today datetime.Date) (Stats, error) {
	s := Stats{
		Date:           today,
		CollectionSize: len(cards),
		DeckNames:      DeckNames(cards),
	}

	decks := make(map[string]*DeckStats, len(s.DeckNames))
	for _, name := range s.DeckNames {
		decks[name] = &DeckStats{Name: name}
	}

	var stabilitySum, difficultySum float64
	for _, c := range cards {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		p, err := perf.Get(ctx, c.Hash())
		if err != nil {
			return Stats{}, fmt.Errorf("get performance of %s: %w", c.Location(), err)
		}

		deck := decks[c.DeckName]
		deck.Cards++
		if p.IsDue(today) {
			s.DueToday++
			deck.Due++
		}

		r, ok := p.Reviewed()
		if !ok {
			s.NewCards++
			deck.New++
			continue
		}
		s.ReviewedCards++
		s.TotalReviews += r.ReviewCount
		stabilitySum += r.Stability
		difficultySum += r.Difficulty
	}

	if s.ReviewedCards > 0 {
		s.AverageStability = stabilitySum / float64(s.ReviewedCards)
		s.AverageDifficulty = difficultySum / float64(s.ReviewedCards)
	}

	s.Decks = lo.Map(s.DeckNames, func(name string, _ int) DeckStats {
		return *decks[name]
	})
	return s, nil
}

// DeckNames returns the sorted distinct deck names of cards.
func DeckNames(cards []card.Card) []string {
	names := lo.Uniq(lo.Map(cards, func(c card.Card, _ int) string {
		return c.DeckName
	}))
	slices.Sort(names)
	return names
}

// Orphans returns the stored hashes that no card in the collection has, in
// hash order.
func Orphans(ctx context.Context, cards []card.Card, src HashLister) ([]hash.Hash, error) {
	stored, err := src.Hashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored cards: %w", err)
	}

	live := lo.Associate(cards, func(c card.Card) (hash.Hash, struct{}) {
		return c.Hash(), struct{}{}
	})
	orphans := lo.Reject(stored, func(h hash.Hash, _ int) bool {
		_, ok := live[h]
		return ok
	})
	slices.SortFunc(orphans, hash.Hash.Compare)
	return orphans, nil
}
