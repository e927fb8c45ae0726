package drill_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/fsrs"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
	"github.com/kpauljoseph/hashcards/internal/store"
)

var errStoreDown = errors.New("store down")

// flakyStore wraps a memory store and fails writes on demand.
type flakyStore struct {
	*store.Memory
	failSets bool
}

func (f *flakyStore) Set(ctx context.Context, h hash.Hash, p performance.Performance) error {
	if f.failSets {
		return errStoreDown
	}
	return f.Memory.Set(ctx, h, p)
}

func basicCard(deck, question string) card.Card {
	return card.New(deck, deck+".md", card.Span{}, card.Basic{Question: question, Answer: "answer to " + question})
}

func clozeCards(deck, text string, deletions ...[2]int) []card.Card {
	cards := make([]card.Card, 0, len(deletions))
	for _, d := range deletions {
		cards = append(cards, card.New(deck, deck+".md", card.Span{}, card.Cloze{Text: text, Start: d[0], End: d[1]}))
	}
	return cards
}

func questions(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Front())
	}
	return out
}

func allDue(cards []card.Card) store.HashSet {
	due := make(store.HashSet)
	for _, c := range cards {
		due[c.Hash()] = struct{}{}
	}
	return due
}

var reviewDay = datetime.NewDate(2024, time.January, 10)

func fixedClock() datetime.Timestamp {
	ts, err := datetime.ParseTimestamp("2024-01-10T12:00:00.000")
	Expect(err).NotTo(HaveOccurred())
	return ts
}

// markReviewed gives c a review record that is due on reviewDay.
func markReviewed(ctx context.Context, s *store.Memory, c card.Card) {
	at, err := datetime.ParseTimestamp("2024-01-07T12:00:00.000")
	Expect(err).NotTo(HaveOccurred())
	r := performance.Update(performance.New, fsrs.Good, at)
	Expect(r.DueDate).To(Equal(reviewDay))
	Expect(s.Set(ctx, c.Hash(), performance.FromReviewed(r))).To(Succeed())
}
