package hash_test

import (
	"encoding/json"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/hash"
)

var _ = Describe("Hash", func() {
	Context("single-shot hashing", func() {
		It("should produce the known BLAKE3 digest", func() {
			h := hash.Sum([]byte("test"))
			Expect(h.Hex()).To(Equal("4878ca0425c739fa427f7eda20fe845f6b2e46ba5fe2a14df5b1e32f50603215"))
			Expect(h.String()).To(Equal(h.Hex()))
		})

		It("should accept empty input", func() {
			Expect(hash.Sum(nil)).To(Equal(hash.Sum([]byte{})))
			Expect(hash.Sum(nil)).NotTo(Equal(hash.Hash{}))
		})
	})

	Context("incremental hashing", func() {
		It("should match single-shot hashing over the concatenation", func() {
			h := hash.NewHasher().UpdateString("te").Update([]byte("st")).Finalize()
			Expect(h).To(Equal(hash.Sum([]byte("test"))))
		})
	})

	Context("hex encoding", func() {
		It("should round-trip", func() {
			h := hash.Sum([]byte("round trip"))
			parsed, err := hash.ParseHex(h.Hex())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(h))
		})

		DescribeTable("should reject invalid input",
			func(input string) {
				_, err := hash.ParseHex(input)
				Expect(err).To(MatchError(hash.ErrInvalidHash))
			},
			Entry("empty", ""),
			Entry("too short", "abcd"),
			Entry("not hex", "zz78ca0425c739fa427f7eda20fe845f6b2e46ba5fe2a14df5b1e32f50603215"),
			Entry("too long", "4878ca0425c739fa427f7eda20fe845f6b2e46ba5fe2a14df5b1e32f5060321500"),
		)

		It("should marshal as a JSON string", func() {
			h := hash.Sum([]byte("test"))
			data, err := json.Marshal(map[string]hash.Hash{"h": h})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`{"h":"4878ca0425c739fa427f7eda20fe845f6b2e46ba5fe2a14df5b1e32f50603215"}`))

			var decoded map[string]hash.Hash
			Expect(json.Unmarshal(data, &decoded)).To(Succeed())
			Expect(decoded["h"]).To(Equal(h))
		})
	})

	Context("ordering", func() {
		It("should agree with the ordering of the hex encoding", func() {
			hashes := []hash.Hash{
				hash.Sum([]byte("a")),
				hash.Sum([]byte("b")),
				hash.Sum([]byte("c")),
				hash.Sum([]byte("d")),
			}
			sort.Slice(hashes, func(i, j int) bool { return hashes[i].Compare(hashes[j]) < 0 })
			for i := 1; i < len(hashes); i++ {
				Expect(hashes[i-1].Hex() < hashes[i].Hex()).To(BeTrue())
			}
			Expect(hashes[0].Compare(hashes[0])).To(Equal(0))
		})
	})
})
