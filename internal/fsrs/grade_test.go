package fsrs_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/fsrs"
)

var _ = Describe("Grade", func() {
	DescribeTable("should round-trip its text form",
		func(g fsrs.Grade, text string) {
			Expect(g.String()).To(Equal(text))
			parsed, err := fsrs.ParseGrade(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(g))
		},
		Entry("forgot", fsrs.Forgot, "forgot"),
		Entry("hard", fsrs.Hard, "hard"),
		Entry("good", fsrs.Good, "good"),
		Entry("easy", fsrs.Easy, "easy"),
	)

	DescribeTable("should reject unknown strings",
		func(text string) {
			_, err := fsrs.ParseGrade(text)
			Expect(err).To(MatchError(fsrs.ErrInvalidGrade))
		},
		Entry("empty", ""),
		Entry("capitalized", "Good"),
		Entry("unknown", "again"),
	)

	It("should use capitalized names in JSON", func() {
		data, err := json.Marshal([]fsrs.Grade{fsrs.Forgot, fsrs.Easy})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`["Forgot","Easy"]`))

		var decoded []fsrs.Grade
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded).To(Equal([]fsrs.Grade{fsrs.Forgot, fsrs.Easy}))

		Expect(json.Unmarshal([]byte(`"forgot"`), new(fsrs.Grade))).To(MatchError(fsrs.ErrInvalidGrade))
	})

	It("should requeue only failed or hard recalls", func() {
		Expect(fsrs.Forgot.Requeues()).To(BeTrue())
		Expect(fsrs.Hard.Requeues()).To(BeTrue())
		Expect(fsrs.Good.Requeues()).To(BeFalse())
		Expect(fsrs.Easy.Requeues()).To(BeFalse())
	})

	It("should describe invalid values", func() {
		Expect(fsrs.Grade(9).IsValid()).To(BeFalse())
		Expect(fsrs.Grade(9).String()).To(Equal("Grade(9)"))
	})
})
