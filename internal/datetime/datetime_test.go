package datetime_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/datetime"
)

var _ = Describe("Date", func() {
	It("should parse and format", func() {
		d, err := datetime.ParseDate("2024-02-29")
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal(datetime.NewDate(2024, time.February, 29)))
		Expect(d.String()).To(Equal("2024-02-29"))
	})

	DescribeTable("should reject malformed dates",
		func(input string) {
			_, err := datetime.ParseDate(input)
			Expect(err).To(MatchError(datetime.ErrInvalidDate))
		},
		Entry("empty", ""),
		Entry("wrong separator", "2024/01/01"),
		Entry("impossible day", "2023-02-29"),
		Entry("with time", "2024-01-01T00:00:00.000"),
	)

	It("should count calendar days across month and DST boundaries", func() {
		start := datetime.NewDate(2024, time.March, 30)
		Expect(start.AddDays(3)).To(Equal(datetime.NewDate(2024, time.April, 2)))
		Expect(start.AddDays(3).DaysSince(start)).To(Equal(3))
		Expect(start.DaysSince(start)).To(Equal(0))
		Expect(start.Before(start.AddDays(1))).To(BeTrue())
		Expect(start.After(start.AddDays(-1))).To(BeTrue())
	})

	It("should take the wall-clock day of a time", func() {
		t := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.FixedZone("x", -5*3600))
		Expect(datetime.DateOf(t)).To(Equal(datetime.NewDate(2024, time.January, 1)))
	})
})

var _ = Describe("Timestamp", func() {
	It("should keep millisecond precision", func() {
		ts := datetime.TimestampOf(time.Date(2024, time.January, 1, 12, 30, 45, 123456789, time.UTC))
		Expect(ts.String()).To(Equal("2024-01-01T12:30:45.123"))

		parsed, err := datetime.ParseTimestamp(ts.String())
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(ts))
		Expect(parsed.Date()).To(Equal(datetime.NewDate(2024, time.January, 1)))
	})

	It("should reject malformed timestamps", func() {
		_, err := datetime.ParseTimestamp("2024-01-01 12:00")
		Expect(err).To(MatchError(datetime.ErrInvalidTimestamp))
	})

	It("should round-trip through text", func() {
		ts := datetime.Now()
		text, err := ts.MarshalText()
		Expect(err).NotTo(HaveOccurred())

		var decoded datetime.Timestamp
		Expect(decoded.UnmarshalText(text)).To(Succeed())
		Expect(decoded).To(Equal(ts))
	})
})
