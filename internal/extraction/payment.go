package extraction

import "strings"

// paymentMethods is ordered; earlier entries win when several are mentioned
var paymentMethods = []string{
	"cash",
	"credit",
	"debit",
	"visa",
	"mastercard",
	"amex",
	"discover",
	"paypal",
	"venmo",
	"apple pay",
	"google pay",
	"mobile pay",
}

// FindPaymentMethod returns the first known payment keyword found in text
func FindPaymentMethod(text string) string {
	lower := strings.ToLower(text)
	for _, method := range paymentMethods {
		if strings.Contains(lower, method) {
			return capitalize(method)
		}
	}
	return UnknownPaymentMethod
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
