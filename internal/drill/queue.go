package drill

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
	"github.com/kpauljoseph/hashcards/internal/store"
)

type PerformanceReader interface {
	Get(ctx context.Context, h hash.Hash) (performance.Performance, error)
}

// DueSource registers the cards of a collection and reports which are due.
type DueSource interface {
	Insert(ctx context.Context, h hash.Hash, addedAt datetime.Timestamp) error
	Due(ctx context.Context, today datetime.Date) (store.HashSet, error)
}

// DueToday registers any card the store has not seen yet and returns the
// hashes of collection cards due on now's date.
func DueToday(ctx context.Context, src DueSource, cards []card.Card, now datetime.Timestamp) (store.HashSet, error) {
	for _, c := range cards {
		if err := src.Insert(ctx, c.Hash(), now); err != nil {
			return nil, fmt.Errorf("register card %s: %w", c.Location(), err)
		}
	}

	due, err := src.Due(ctx, now.Date())
	if err != nil {
		return nil, err
	}

	result := make(store.HashSet)
	for _, c := range cards {
		if due.Contains(c.Hash()) {
			result[c.Hash()] = struct{}{}
		}
	}
	return result, nil
}

type queueOptions struct {
	deck         string
	cardLimit    int
	newCardLimit int
	burySiblings bool
	shuffle      bool
	seed         uint64
}

type QueueOption func(*queueOptions)

// WithDeck keeps only cards whose deck name matches exactly.
func WithDeck(name string) QueueOption {
	return func(o *queueOptions) {
		o.deck = name
	}
}

func WithCardLimit(n int) QueueOption {
	return func(o *queueOptions) {
		o.cardLimit = n
	}
}

// WithNewCardLimit caps never-reviewed cards. Reviewed due cards are always
// admitted.
func WithNewCardLimit(n int) QueueOption {
	return func(o *queueOptions) {
		o.newCardLimit = n
	}
}

func WithBurySiblings(bury bool) QueueOption {
	return func(o *queueOptions) {
		o.burySiblings = bury
	}
}

func WithShuffle(seed uint64) QueueOption {
	return func(o *queueOptions) {
		o.shuffle = true
		o.seed = seed
	}
}

// BuildQueue selects the due cards and returns them in presentation order.
// Filters apply in order: deck, new-card cap, card cap, sibling burying,
// shuffle.
func BuildQueue(ctx context.Context, cards []card.Card, due store.HashSet, perf PerformanceReader, opts ...QueueOption) ([]card.Card, error) {
	o := queueOptions{cardLimit: -1, newCardLimit: -1}
	for _, opt := range opts {
		opt(&o)
	}

	queue := lo.Filter(cards, func(c card.Card, _ int) bool {
		return due.Contains(c.Hash())
	})

	if o.deck != "" {
		queue = lo.Filter(queue, func(c card.Card, _ int) bool {
			return c.DeckName == o.deck
		})
	}

	if o.newCardLimit >= 0 {
		var err error
		if queue, err = capNewCards(ctx, queue, perf, o.newCardLimit); err != nil {
			return nil, err
		}
	}

	if o.cardLimit >= 0 && len(queue) > o.cardLimit {
		queue = queue[:o.cardLimit]
	}

	if o.burySiblings {
		queue = burySiblings(queue)
	}

	if o.shuffle && len(queue) > 0 {
		Shuffle(queue, NewTinyRNG(o.seed))
	}

	return queue, nil
}

func capNewCards(ctx context.Context, cards []card.Card, perf PerformanceReader, limit int) ([]card.Card, error) {
	kept := make([]card.Card, 0, len(cards))
	admitted := 0
	for _, c := range cards {
		p, err := perf.Get(ctx, c.Hash())
		if err != nil {
			return nil, fmt.Errorf("look up %s: %w", c.Location(), err)
		}
		if p.IsNew() {
			if admitted >= limit {
				continue
			}
			admitted++
		}
		kept = append(kept, c)
	}
	return kept, nil
}

// burySiblings keeps the first card of each cloze family.
func burySiblings(cards []card.Card) []card.Card {
	seen := make(map[hash.Hash]struct{})
	return lo.Filter(cards, func(c card.Card, _ int) bool {
		family, ok := c.FamilyHash()
		if !ok {
			return true
		}
		if _, dup := seen[family]; dup {
			return false
		}
		seen[family] = struct{}{}
		return true
	})
}
