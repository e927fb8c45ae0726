package drill_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/drill"
	"github.com/kpauljoseph/hashcards/internal/fsrs"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
	"github.com/kpauljoseph/hashcards/internal/store"
)

var _ = Describe("Queue", func() {
	var (
		ctx   context.Context
		perf  *store.Memory
		cards []card.Card
	)

	BeforeEach(func() {
		ctx = context.Background()
		perf = store.NewMemory()
		cards = []card.Card{
			basicCard("math", "m1"),
			basicCard("math", "m2"),
			basicCard("bio", "b1"),
			basicCard("bio", "b2"),
			basicCard("bio", "b3"),
		}
	})

	Context("due cards", func() {
		It("should register new cards and report them due", func() {
			due, err := drill.DueToday(ctx, perf, cards, fixedClock())
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(len(cards)))

			hashes, err := perf.Hashes(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hashes).To(HaveLen(len(cards)))
		})

		It("should leave out cards scheduled later and records outside the collection", func() {
			later := performance.Update(performance.New, fsrs.Easy, fixedClock())
			Expect(perf.Set(ctx, cards[0].Hash(), performance.FromReviewed(later))).To(Succeed())
			orphan := basicCard("gone", "deleted")
			Expect(perf.Insert(ctx, orphan.Hash(), fixedClock())).To(Succeed())

			due, err := drill.DueToday(ctx, perf, cards, fixedClock())
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(4))
			Expect(due.Contains(cards[0].Hash())).To(BeFalse())
			Expect(due.Contains(orphan.Hash())).To(BeFalse())
		})
	})

	It("should keep only due cards in collection order", func() {
		due := store.HashSet{cards[1].Hash(): {}, cards[3].Hash(): {}}
		queue, err := drill.BuildQueue(ctx, cards, due, perf)
		Expect(err).NotTo(HaveOccurred())
		Expect(questions(queue)).To(Equal([]string{"m2", "b2"}))
	})

	It("should filter by exact deck name", func() {
		queue, err := drill.BuildQueue(ctx, cards, allDue(cards), perf, drill.WithDeck("bio"))
		Expect(err).NotTo(HaveOccurred())
		Expect(questions(queue)).To(Equal([]string{"b1", "b2", "b3"}))

		queue, err = drill.BuildQueue(ctx, cards, allDue(cards), perf, drill.WithDeck("Bio"))
		Expect(err).NotTo(HaveOccurred())
		Expect(queue).To(BeEmpty())
	})

	It("should truncate to the card limit", func() {
		queue, err := drill.BuildQueue(ctx, cards, allDue(cards), perf, drill.WithCardLimit(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(questions(queue)).To(Equal([]string{"m1", "m2"}))

		queue, err = drill.BuildQueue(ctx, cards, allDue(cards), perf, drill.WithCardLimit(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(queue).To(BeEmpty())
	})

	Context("new card limit", func() {
		BeforeEach(func() {
			markReviewed(ctx, perf, cards[1])
			markReviewed(ctx, perf, cards[4])
		})

		It("should cap new cards but admit every reviewed card", func() {
			queue, err := drill.BuildQueue(ctx, cards, allDue(cards), perf, drill.WithNewCardLimit(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(questions(queue)).To(Equal([]string{"m1", "m2", "b3"}))
		})

		It("should admit no new cards at zero", func() {
			queue, err := drill.BuildQueue(ctx, cards, allDue(cards), perf, drill.WithNewCardLimit(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(questions(queue)).To(Equal([]string{"m2", "b3"}))
		})

		It("should apply the new card cap before the card limit", func() {
			queue, err := drill.BuildQueue(ctx, cards, allDue(cards), perf,
				drill.WithCardLimit(2), drill.WithNewCardLimit(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(questions(queue)).To(Equal([]string{"m2", "b3"}))
		})
	})

	Context("sibling burying", func() {
		var siblings []card.Card

		BeforeEach(func() {
			siblings = append(clozeCards("bio", "Foo bar baz quux.", [2]int{4, 6}, [2]int{12, 15}),
				basicCard("bio", "plain"))
			siblings = append(siblings, clozeCards("bio", "Alone here.", [2]int{6, 9})...)
		})

		It("should keep one card per cloze family", func() {
			queue, err := drill.BuildQueue(ctx, siblings, allDue(siblings), perf, drill.WithBurySiblings(true))
			Expect(err).NotTo(HaveOccurred())
			Expect(queue).To(HaveLen(3))
			Expect(queue[0].Hash()).To(Equal(siblings[0].Hash()))
			Expect(questions(queue)[1]).To(Equal("plain"))
		})

		It("should keep every sibling when disabled", func() {
			queue, err := drill.BuildQueue(ctx, siblings, allDue(siblings), perf, drill.WithBurySiblings(false))
			Expect(err).NotTo(HaveOccurred())
			Expect(queue).To(HaveLen(4))
		})
	})

	It("should shuffle without losing cards", func() {
		queue, err := drill.BuildQueue(ctx, cards, allDue(cards), perf, drill.WithShuffle(42))
		Expect(err).NotTo(HaveOccurred())
		Expect(questions(queue)).To(ConsistOf("m1", "m2", "b1", "b2", "b3"))
		Expect(questions(queue)).To(Equal([]string{"b3", "b2", "m2", "m1", "b1"}))
		Expect(questions(cards)).To(Equal([]string{"m1", "m2", "b1", "b2", "b3"}))
	})

	It("should surface store failures", func() {
		_, err := drill.BuildQueue(ctx, cards, allDue(cards), failingReader{}, drill.WithNewCardLimit(1))
		Expect(err).To(MatchError(errStoreDown))
	})
})

type failingReader struct{}

func (failingReader) Get(context.Context, hash.Hash) (performance.Performance, error) {
	return performance.New, errStoreDown
}
