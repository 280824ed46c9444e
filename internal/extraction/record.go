package extraction

import "time"

const (
	// DefaultCurrency is the only currency reported
	DefaultCurrency = "USD"

	// DefaultCategory is assigned to every line item
	DefaultCategory = "general"

	// UnknownVendor is returned when no vendor heuristic matches
	UnknownVendor = "Unknown Vendor"

	// UnknownPaymentMethod is returned when no payment keyword is present
	UnknownPaymentMethod = "Unknown"

	// ConfidenceWithItems is reported when at least one line item was parsed
	ConfidenceWithItems = 0.95

	// ConfidenceWithoutItems is reported when no line item was parsed
	ConfidenceWithoutItems = 0.85

	// ConfidenceOnError is reported on the error record
	ConfidenceOnError = 0.5

	dateLayout = "2006-01-02"
)

// LineItem is a single purchased item parsed from one receipt line
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Amount `json:"unit_price"`
	TotalPrice  Amount `json:"total_price"`
	Category    string `json:"category"`
}

// Record is the structured result for one receipt.
// Error is only set on the error variant.
type Record struct {
	Error         string     `json:"error,omitempty"`
	Vendor        string     `json:"vendor"`
	Date          string     `json:"date"` // YYYY-MM-DD
	Total         Amount     `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Currency      string     `json:"currency"`
	RawText       string     `json:"raw_text"`
	Confidence    float64    `json:"confidence"`
	Items         []LineItem `json:"items"`
}

// IsError reports whether this is the error variant
func (r *Record) IsError() bool {
	return r.Error != ""
}

// ErrorRecord builds the fallback record returned when text acquisition fails
func ErrorRecord(err error, now time.Time) *Record {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Record{
		Error:         msg,
		Vendor:        "Unknown",
		Date:          now.Format(dateLayout),
		Total:         Zero,
		PaymentMethod: UnknownPaymentMethod,
		Currency:      DefaultCurrency,
		RawText:       "",
		Confidence:    ConfidenceOnError,
		Items:         []LineItem{},
	}
}
