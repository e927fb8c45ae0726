package drill_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/drill"
	"github.com/kpauljoseph/hashcards/internal/fsrs"
)

var _ = Describe("AnswerControls", func() {
	It("should offer every grade in full mode", func() {
		c, err := drill.ParseAnswerControls("full")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(drill.FullControls))
		Expect(c.Grades()).To(Equal([]fsrs.Grade{fsrs.Forgot, fsrs.Hard, fsrs.Good, fsrs.Easy}))
		Expect(c.Allows(fsrs.Hard)).To(BeTrue())
	})

	It("should offer pass or fail in binary mode", func() {
		c, err := drill.ParseAnswerControls("binary")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.String()).To(Equal("binary"))
		Expect(c.Grades()).To(Equal([]fsrs.Grade{fsrs.Forgot, fsrs.Good}))
		Expect(c.Allows(fsrs.Easy)).To(BeFalse())
	})

	It("should reject unknown modes", func() {
		_, err := drill.ParseAnswerControls("ternary")
		Expect(err).To(HaveOccurred())
	})
})
