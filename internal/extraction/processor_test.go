package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockTextSource is a mock implementation of TextSource
type mockTextSource struct {
	text  string
	err   error
	calls int
}

func (m *mockTextSource) ExtractText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// mockTimeSource is a mock implementation of TimeSource
type mockTimeSource struct {
	now time.Time
}

func (m *mockTimeSource) Now() time.Time {
	return m.now
}

const sampleReceipt = `Green Leaf Cafe
123 Market St
Date: 03/15/2024
Coffee 2 @ $3.50 $7.00
Bagel 1 @ $2.25 $2.25
Subtotal $9.25
Tax $0.74
Total: $9.99
Paid VISA ****4242`

var _ = Describe("Processor", func() {
	var (
		source    *mockTextSource
		timeSrc   *mockTimeSource
		processor *Processor
	)

	BeforeEach(func() {
		source = &mockTextSource{}
		timeSrc = &mockTimeSource{now: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)}
		processor = NewProcessorWithDeps(source, timeSrc)
	})

	Describe("Process", func() {
		var (
			text   string
			record *Record
		)

		JustBeforeEach(func() {
			record = processor.Process(text)
		})

		When("the receipt has every field", func() {
			BeforeEach(func() {
				text = sampleReceipt
			})

			It("finds the vendor", func() {
				Expect(record.Vendor).To(Equal("Green Leaf Cafe"))
			})

			It("finds the date", func() {
				Expect(record.Date).To(Equal("2024-03-15"))
			})

			It("finds the total", func() {
				Expect(record.Total.String()).To(Equal("9.99"))
			})

			It("finds the payment method", func() {
				Expect(record.PaymentMethod).To(Equal("Visa"))
			})

			It("finds the items in order", func() {
				Expect(record.Items).To(HaveLen(2))
				Expect(record.Items[0].Description).To(Equal("Coffee"))
				Expect(record.Items[1].Description).To(Equal("Bagel"))
			})

			It("reports high confidence", func() {
				Expect(record.Confidence).To(Equal(0.95))
			})

			It("keeps the raw text verbatim", func() {
				Expect(record.RawText).To(Equal(sampleReceipt))
			})

			It("reports USD", func() {
				Expect(record.Currency).To(Equal("USD"))
			})

			It("is not an error record", func() {
				Expect(record.IsError()).To(BeFalse())
			})
		})

		When("the receipt only has a total", func() {
			BeforeEach(func() {
				text = "Total: $45.67"
			})

			It("finds the total", func() {
				Expect(record.Total.String()).To(Equal("45.67"))
			})

			It("has no items", func() {
				Expect(record.Items).To(BeEmpty())
			})

			It("reports lower confidence", func() {
				Expect(record.Confidence).To(Equal(0.85))
			})
		})

		When("the receipt has no date", func() {
			BeforeEach(func() {
				text = "Total: $45.67"
			})

			It("uses today's date", func() {
				Expect(record.Date).To(Equal("2025-06-01"))
			})
		})

		When("the text is empty", func() {
			BeforeEach(func() {
				text = ""
			})

			It("still builds a complete record", func() {
				Expect(record.Vendor).To(Equal(UnknownVendor))
				Expect(record.Date).To(Equal("2025-06-01"))
				Expect(record.Total.String()).To(Equal("0.00"))
				Expect(record.PaymentMethod).To(Equal("Unknown"))
				Expect(record.Items).NotTo(BeNil())
				Expect(record.Confidence).To(Equal(0.85))
			})
		})

		When("the text is binary garbage", func() {
			BeforeEach(func() {
				text = string([]byte{0x00, 0xff, 0xfe, '\n', 0x80, '$', '1', '.', '0', '0', 0xc3})
			})

			It("still builds a complete record", func() {
				Expect(record.Total.IsNegative()).To(BeFalse())
				Expect(record.Confidence).To(BeNumerically(">=", 0))
				Expect(record.Confidence).To(BeNumerically("<=", 1))
				_, err := time.Parse("2006-01-02", record.Date)
				Expect(err).NotTo(HaveOccurred())
			})
		})

		It("is idempotent", func() {
			text = sampleReceipt
			first := processor.Process(text)
			second := processor.Process(text)
			Expect(second).To(Equal(first))
		})
	})

	Describe("ProcessImage", func() {
		var record *Record

		JustBeforeEach(func() {
			record = processor.ProcessImage(context.Background(), []byte("image"), "image/png")
		})

		When("text acquisition succeeds", func() {
			BeforeEach(func() {
				source.text = "Coffee 2 @ $3.50 $7.00"
			})

			It("calls the text source once", func() {
				Expect(source.calls).To(Equal(1))
			})

			It("parses the text", func() {
				Expect(record.Items).To(HaveLen(1))
				Expect(record.Items[0].Quantity).To(Equal(2))
				Expect(record.Items[0].UnitPrice.String()).To(Equal("3.50"))
				Expect(record.Items[0].TotalPrice.String()).To(Equal("7.00"))
				Expect(record.Confidence).To(Equal(0.95))
			})
		})

		When("text acquisition fails", func() {
			BeforeEach(func() {
				source.err = errors.New("OCR failed: engine crashed")
			})

			It("returns the error record", func() {
				Expect(record.IsError()).To(BeTrue())
				Expect(record.Error).To(Equal("OCR failed: engine crashed"))
				Expect(record.Vendor).To(Equal("Unknown"))
				Expect(record.PaymentMethod).To(Equal("Unknown"))
				Expect(record.Date).To(Equal("2025-06-01"))
				Expect(record.Total.String()).To(Equal("0.00"))
				Expect(record.RawText).To(BeEmpty())
				Expect(record.Items).To(BeEmpty())
				Expect(record.Confidence).To(Equal(0.5))
			})
		})

		When("no text source is configured", func() {
			BeforeEach(func() {
				processor = NewProcessorWithDeps(nil, timeSrc)
			})

			It("returns the error record", func() {
				Expect(record.IsError()).To(BeTrue())
				Expect(record.Confidence).To(Equal(0.5))
			})
		})
	})

	Describe("Record JSON", func() {
		It("uses the documented keys", func() {
			data, err := json.Marshal(processor.Process("Coffee 2 @ $3.50 $7.00\nTotal: $7.00"))
			Expect(err).NotTo(HaveOccurred())

			var doc map[string]interface{}
			Expect(json.Unmarshal(data, &doc)).To(Succeed())
			Expect(doc).To(HaveKey("vendor"))
			Expect(doc).To(HaveKey("date"))
			Expect(doc).To(HaveKeyWithValue("total", 7.0))
			Expect(doc).To(HaveKey("payment_method"))
			Expect(doc).To(HaveKeyWithValue("currency", "USD"))
			Expect(doc).To(HaveKey("raw_text"))
			Expect(doc).To(HaveKeyWithValue("confidence", 0.95))
			Expect(doc).NotTo(HaveKey("error"))
			Expect(doc["items"]).To(HaveLen(1))
		})

		It("includes the error and an empty item list on the error record", func() {
			data, err := json.Marshal(ErrorRecord(errors.New("boom"), timeSrc.now))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`"error":"boom"`))
			Expect(string(data)).To(ContainSubstring(`"items":[]`))
			Expect(string(data)).To(ContainSubstring(`"total":0.00`))
		})
	})
})
