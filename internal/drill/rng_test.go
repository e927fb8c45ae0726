package drill_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/drill"
)

var _ = Describe("TinyRNG", func() {
	It("should follow the LCG sequence", func() {
		rng := drill.NewTinyRNG(0)
		Expect(rng.NextUint32()).To(Equal(uint32(335903614)))
		Expect(rng.NextUint32()).To(Equal(uint32(436792849)))
		Expect(rng.NextUint32()).To(Equal(uint32(2599843874)))
	})

	It("should stay below the bound", func() {
		rng := drill.NewTinyRNG(drill.WallClockSeed())
		for i := 0; i < 1000; i++ {
			Expect(rng.Below(7)).To(BeNumerically("<", 7))
		}
	})

	It("should shuffle deterministically for a seed", func() {
		items := []int{0, 1, 2, 3, 4}
		drill.Shuffle(items, drill.NewTinyRNG(42))
		Expect(items).To(Equal([]int{4, 3, 1, 0, 2}))
	})

	It("should tolerate empty input", func() {
		var items []int
		drill.Shuffle(items, drill.NewTinyRNG(1))
		Expect(items).To(BeEmpty())
	})
})
