package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FindDate", func() {
	DescribeTable("recognized dates",
		func(text string, expected string) {
			date, ok := FindDate(text).Get()
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal(expected))
		},
		Entry("slash separated", "Date: 03/15/2024", "2024-03-15"),
		Entry("slash separated without padding", "3/5/2024 14:02", "2024-03-05"),
		Entry("dash separated month first", "03-15-2024", "2024-03-15"),
		Entry("dash separated day first when month first is impossible", "15-03-2024", "2024-03-15"),
		Entry("dash separated two digit year", "03-15-24", "2024-03-15"),
		Entry("two digit year before the pivot", "03-15-75", "1975-03-15"),
		Entry("ISO", "Printed 2023-11-02 08:15", "2023-11-02"),
		Entry("month name first", "Mar 15, 2024", "2024-03-15"),
		Entry("month name first without comma", "March 15 2024", "2024-03-15"),
		Entry("long month name", "September 9, 2022", "2022-09-09"),
		Entry("abbreviated with extra letters", "Sept 9, 2022", "2022-09-09"),
		Entry("upper case month", "DEC 24, 2021", "2021-12-24"),
		Entry("day first month name", "15 Mar 2024", "2024-03-15"),
		Entry("day first long month name", "1 January 2020", "2020-01-01"),
	)

	When("the slash date has a two digit year", func() {
		It("falls through to later patterns", func() {
			Expect(FindDate("03/15/24").Present()).To(BeFalse())
		})

		It("still finds a later pattern", func() {
			date, ok := FindDate("03/15/24 printed 2024-03-16").Get()
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-16"))
		})
	})

	When("a date-shaped match is not a real date", func() {
		It("does not report a date", func() {
			Expect(FindDate("02/30/2024").Present()).To(BeFalse())
		})

		It("moves on to the next pattern", func() {
			date, ok := FindDate("02/30/2024\nJan 5, 2024").Get()
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-01-05"))
		})
	})

	When("the year is zero", func() {
		It("does not report a date", func() {
			Expect(FindDate("01/01/0000").Present()).To(BeFalse())
		})

		It("moves on to the next pattern", func() {
			date, ok := FindDate("01/01/0000\n15 Mar 2024").Get()
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("several patterns match", func() {
		It("prefers the earlier pattern over text order", func() {
			date, _ := FindDate("2024-01-01 then 02/03/2024").Get()
			Expect(date).To(Equal("2024-02-03"))
		})
	})

	When("there is no date", func() {
		It("reports nothing", func() {
			Expect(FindDate("Coffee 2 @ $3.50 $7.00").Present()).To(BeFalse())
		})

		It("handles empty text", func() {
			Expect(FindDate("").Present()).To(BeFalse())
		})
	})
})
