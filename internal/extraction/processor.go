package extraction

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var errNoTextSource = errors.New("no text source configured")

// TextSource turns an image into raw receipt text
type TextSource interface {
	ExtractText(ctx context.Context, imageData []byte, contentType string) (string, error)
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Processor assembles a Record from receipt text.
// It holds no mutable state and is safe for concurrent use.
type Processor struct {
	source     TextSource
	timeSource TimeSource
}

// NewProcessor creates a Processor that reads images through source.
// source may be nil when only Process is used.
func NewProcessor(source TextSource) *Processor {
	return &Processor{
		source:     source,
		timeSource: &defaultTimeSource{},
	}
}

// NewProcessorWithDeps creates a Processor with a custom time source for testing
func NewProcessorWithDeps(source TextSource, timeSrc TimeSource) *Processor {
	return &Processor{
		source:     source,
		timeSource: timeSrc,
	}
}

// Process runs every extractor over text and builds the record.
// It cannot fail: missing fields fall back to their defaults.
func (p *Processor) Process(text string) *Record {
	vendor := FindVendor(text)
	date := FindDate(text)
	total := FindTotal(text)
	paymentMethod := FindPaymentMethod(text)
	items := FindItems(text)

	confidence := ConfidenceWithoutItems
	if len(items) > 0 {
		confidence = ConfidenceWithItems
	}

	return &Record{
		Vendor:        vendor,
		Date:          date.OrElse(p.timeSource.Now().Format(dateLayout)),
		Total:         total,
		PaymentMethod: paymentMethod,
		Currency:      DefaultCurrency,
		RawText:       text,
		Confidence:    confidence,
		Items:         items,
	}
}

// ProcessImage acquires text from an image and processes it.
// Acquisition failures are turned into an error record, never returned.
func (p *Processor) ProcessImage(ctx context.Context, imageData []byte, contentType string) *Record {
	if p.source == nil {
		return ErrorRecord(errNoTextSource, p.timeSource.Now())
	}

	text, err := p.source.ExtractText(ctx, imageData, contentType)
	if err != nil {
		slog.Error("Failed to extract receipt text",
			"content_type", contentType,
			"file_size", len(imageData),
			"error", err,
		)
		return ErrorRecord(err, p.timeSource.Now())
	}

	return p.Process(text)
}
