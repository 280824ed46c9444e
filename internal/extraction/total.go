package extraction

import "regexp"

const amountExpr = `[$€£]?\s*([\d,]+\.\d{2})`

// totalPatterns are tried in order. Each captures the amount in group 1.
var totalPatterns = []*regexp.Regexp{
	// "Total: $45.67", "Balance Due 12.00"
	regexp.MustCompile(`(?i)\b(?:total|amount|balance|due):?\s*` + amountExpr),
	// "Subtotal $40.00"
	regexp.MustCompile(`(?i)\b(?:subtotal|total|amount)\s*` + amountExpr),
	// "$45.67 TOTAL"
	regexp.MustCompile(`(?i)` + amountExpr + `\s*(?:total|due|balance)`),
}

var anyAmount = regexp.MustCompile(amountExpr)

// FindTotal returns the receipt total, or zero when nothing amount-shaped exists
func FindTotal(text string) Amount {
	for _, re := range totalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if amount, ok := ParseAmount(m[1]); ok {
			return amount
		}
	}

	// Last amount on the receipt is usually the total
	matches := anyAmount.FindAllStringSubmatch(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if amount, ok := ParseAmount(matches[i][1]); ok {
			return amount
		}
	}

	return Zero
}
