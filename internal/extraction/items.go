package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// "Coffee 2 @ $3.50 $7.00"
var itemPattern = regexp.MustCompile(`([A-Za-z\s]+)\s+(\d+)\s+@\s+([$€£]?\s*[\d,]+\.\d{2})\s+([$€£]?\s*[\d,]+\.\d{2})`)

// FindItems parses one line item per matching line, in receipt order.
// Lines that don't look like items are skipped.
func FindItems(text string) []LineItem {
	items := make([]LineItem, 0)
	for _, line := range strings.Split(text, "\n") {
		if item, ok := parseItem(line); ok {
			items = append(items, item)
		}
	}
	return items
}

func parseItem(line string) (LineItem, bool) {
	m := itemPattern.FindStringSubmatch(line)
	if m == nil {
		return LineItem{}, false
	}

	description := strings.TrimSpace(m[1])
	if description == "" {
		return LineItem{}, false
	}
	quantity, err := strconv.Atoi(m[2])
	if err != nil || quantity <= 0 {
		return LineItem{}, false
	}
	unitPrice, ok := ParseAmount(m[3])
	if !ok {
		return LineItem{}, false
	}
	totalPrice, ok := ParseAmount(m[4])
	if !ok {
		return LineItem{}, false
	}

	return LineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  totalPrice,
		Category:    DefaultCategory,
	}, true
}
