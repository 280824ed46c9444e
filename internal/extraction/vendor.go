package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// vendorPattern pairs a regexp with the submatch that holds the vendor name.
// group 0 means the whole match.
type vendorPattern struct {
	re    *regexp.Regexp
	group int
}

var vendorPatterns = []vendorPattern{
	// "Store: Corner Market". Without a colon the label needs a wide gap,
	// otherwise "Cafe Luna" would read as a label.
	{regexp.MustCompile(`(?im)^\s*(vendor|merchant|store|restaurant|cafe|shop)(?:[ \t]*:[ \t]*|[ \t]{2,})(.+)`), 2},
	// "Welcome to Joe's Diner"
	{regexp.MustCompile(`(?im)(thank you|visit again|welcome to)[ \t]*(.+)`), 2},
	// "Acme Widgets Inc"
	{regexp.MustCompile(`(?m)^[A-Z][a-z]+([ \t]+[A-Z][a-z]+)*[ \t]+(Inc|LLC|Corp|Ltd|Pty)\b`), 0},
	// "Green Leaf Cafe"
	{regexp.MustCompile(`(?m)^[A-Z][a-z]+([ \t]+[A-Z][a-z]+)*[ \t]+(Restaurant|Cafe|Store|Market|Shop)\b`), 0},
}

// vendorHeaderLines is how many leading lines the fallback looks at
const vendorHeaderLines = 3

// FindVendor guesses the merchant name. It never comes back empty.
func FindVendor(text string) string {
	for _, p := range vendorPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if vendor := strings.TrimSpace(m[p.group]); utf8.RuneCountInString(vendor) > 2 {
			return vendor
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > vendorHeaderLines {
		lines = lines[:vendorHeaderLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= 2 {
			continue
		}
		if strings.HasPrefix(line, "Date:") || strings.HasPrefix(line, "Time:") {
			continue
		}
		return line
	}

	return UnknownVendor
}
