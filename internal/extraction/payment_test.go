package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FindPaymentMethod", func() {
	DescribeTable("payment keywords",
		func(text string, expected string) {
			Expect(FindPaymentMethod(text)).To(Equal(expected))
		},
		Entry("cash", "PAID CASH", "Cash"),
		Entry("card brand", "VISA ****1234", "Visa"),
		Entry("multi word method", "Paid with Apple Pay", "Apple pay"),
		Entry("vocabulary order wins over text order", "VISA ****1234\nchange from cash 0.00", "Cash"),
		Entry("credit before visa", "visa credit", "Credit"),
		Entry("nothing found", "Total 4.00", "Unknown"),
		Entry("empty text", "", "Unknown"),
	)
})
