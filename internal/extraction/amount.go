package extraction

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value with two-decimal meaning.
// It serializes as a bare JSON number, e.g. 45.67 or 0.00.
type Amount struct {
	decimal.Decimal
}

// Zero is the amount used when nothing could be parsed
var Zero = Amount{decimal.Zero}

// NewAmount builds an Amount from a float, mostly useful in tests
func NewAmount(f float64) Amount {
	return Amount{decimal.NewFromFloat(f)}
}

// ParseAmount parses an amount-shaped substring such as "$1,234.50".
// Currency symbols, thousands separators and whitespace are ignored.
func ParseAmount(s string) (Amount, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ',', ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return Amount{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return Amount{}, false
	}
	return Amount{d}, true
}

// Float64 returns the amount as a float for callers that need one
func (a Amount) Float64() float64 {
	f, _ := a.Decimal.Float64()
	return f
}

// String renders the amount with exactly two fraction digits
func (a Amount) String() string {
	return a.Decimal.StringFixed(2)
}

// MarshalJSON renders the amount as a JSON number with two fraction digits
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}

// UnmarshalJSON accepts both quoted and bare numbers
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}
